package hanoi

import (
	"math/big"
)

// MoveSource is a finite, non-restartable stream of moves.
//
// It is satisfied by *Sequencer and lets outer layers (CLI output, HTTP
// streaming) depend on the iteration protocol rather than the concrete type.
//
// Example usage:
//
//	src := hanoi.NewDefault()
//	for src.HasMore() {
//	    m, err := src.Next()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(m)
//	}
type MoveSource interface {
	// HasMore reports whether Next will produce another move.
	HasMore() bool
	// Next returns the next move, or ErrExhausted when none remain.
	Next() (Move, error)
}

// Collect drains src into a slice. It is intended for small heights and
// tests; the whole point of a MoveSource is not to do this for large ones.
func Collect(src MoveSource) ([]Move, error) {
	var moves []Move
	for src.HasMore() {
		m, err := src.Next()
		if err != nil {
			return moves, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// TotalMoves returns the number of moves in a full solution for the given
// height, 2^height - 1. It returns 0 for non-positive heights.
func TotalMoves(height int) *big.Int {
	if height <= 0 {
		return new(big.Int)
	}
	total := new(big.Int).Lsh(big.NewInt(1), uint(height))
	return total.Sub(total, big.NewInt(1))
}
