package hanoi

import (
	"errors"
	"fmt"
	"iter"

	apperrors "github.com/agbru/hanoi/internal/errors"
)

// DefaultHeight is the tower height used by NewDefault.
const DefaultHeight = 3

var (
	// ErrInvalidArgument is returned by New when the height is not positive.
	ErrInvalidArgument = errors.New("hanoi: invalid argument")
	// ErrExhausted is returned by Next once the sequence has been fully
	// produced. The sequence cannot be restarted.
	ErrExhausted = errors.New("hanoi: no more moves")
)

// phase is the position of a Sequencer in its generation state machine.
//
// The basis case (height 1) goes phaseBasis -> phaseTerminal. The recursive
// case goes phaseFirstDelegation -> phaseBetween -> phaseSecondDelegation ->
// phaseTerminal.
type phase uint8

const (
	phaseBasis phase = iota
	phaseFirstDelegation
	phaseBetween
	phaseSecondDelegation
	phaseTerminal
)

func (p phase) String() string {
	switch p {
	case phaseBasis:
		return "basis"
	case phaseFirstDelegation:
		return "first-delegation"
	case phaseBetween:
		return "between"
	case phaseSecondDelegation:
		return "second-delegation"
	case phaseTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Sequencer produces, one call at a time, the moves that transfer a tower
// of the given height from source to destination using buffer as spare.
//
// A recursive Sequencer owns at most one child for height-1: the sub-problem
// currently in progress. The child is released as soon as it is exhausted,
// so the live instances always form a single chain no longer than the
// height.
//
// A Sequencer is not safe for concurrent use.
type Sequencer struct {
	height      int
	source      Pole
	destination Pole
	buffer      Pole
	phase       phase
	child       *Sequencer
}

// New creates a Sequencer for a tower of the given height.
//
// For height 1 the sequencer starts in its basis phase. For larger heights
// the child that moves height-1 discs from source to buffer is built
// immediately.
//
// Parameters:
//   - height: The number of discs. Must be at least 1.
//   - source: The pole holding the tower initially.
//   - destination: The pole the tower must end up on.
//   - buffer: The spare pole.
//
// Returns:
//   - *Sequencer: The configured sequencer.
//   - error: An error matching ErrInvalidArgument if height <= 0.
func New(height int, source, destination, buffer Pole) (*Sequencer, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument,
			apperrors.NewValidationError("height", fmt.Sprintf("must be a positive integer, got %d", height), height))
	}
	return newSequencer(height, source, destination, buffer), nil
}

// newSequencer builds a sequencer for a height already known to be valid.
func newSequencer(height int, source, destination, buffer Pole) *Sequencer {
	s := &Sequencer{
		height:      height,
		source:      source,
		destination: destination,
		buffer:      buffer,
	}
	if height == 1 {
		s.phase = phaseBasis
		return s
	}
	s.phase = phaseFirstDelegation
	// Poles re-ordered: the top height-1 discs go to the buffer first.
	s.child = newSequencer(height-1, source, buffer, destination)
	return s
}

// NewDefault returns the sequencer for the classic three-disc puzzle,
// moving from A to C via B.
func NewDefault() *Sequencer {
	return newSequencer(DefaultHeight, A, C, B)
}

// NewWithHeight returns a sequencer moving a tower of the given height from
// A to C via B.
func NewWithHeight(height int) (*Sequencer, error) {
	return New(height, A, C, B)
}

// HasMore reports whether Next will produce another move.
func (s *Sequencer) HasMore() bool {
	return s.phase != phaseTerminal
}

// Next returns the next move of the sequence and advances the state machine.
//
// Returns:
//   - Move: The next move.
//   - error: ErrExhausted if HasMore is false. Every subsequent call fails
//     the same way.
func (s *Sequencer) Next() (Move, error) {
	switch s.phase {
	case phaseBasis:
		s.phase = phaseTerminal
		return Move{From: s.source, To: s.destination}, nil

	case phaseFirstDelegation:
		m, err := s.delegate()
		if err != nil {
			return Move{}, err
		}
		if s.child == nil {
			s.phase = phaseBetween
		}
		return m, nil

	case phaseBetween:
		// Poles re-ordered: the height-1 discs now move from buffer to destination.
		s.child = newSequencer(s.height-1, s.buffer, s.destination, s.source)
		s.phase = phaseSecondDelegation
		return Move{From: s.source, To: s.destination}, nil

	case phaseSecondDelegation:
		m, err := s.delegate()
		if err != nil {
			return Move{}, err
		}
		if s.child == nil {
			s.phase = phaseTerminal
		}
		return m, nil

	case phaseTerminal:
		return Move{}, ErrExhausted

	default:
		panic(fmt.Sprintf("hanoi: unknown %s", s.phase))
	}
}

// delegate forwards to the child and releases it once it is exhausted.
func (s *Sequencer) delegate() (Move, error) {
	m, err := s.child.Next()
	if err != nil {
		return Move{}, err
	}
	if !s.child.HasMore() {
		s.child = nil
	}
	return m, nil
}

// All returns an iterator over the remaining moves. Ranging over it consumes
// the sequencer; breaking out early leaves the rest of the sequence
// available to Next.
func (s *Sequencer) All() iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for s.HasMore() {
			m, err := s.Next()
			if err != nil || !yield(m) {
				return
			}
		}
	}
}

// Height returns the number of discs this sequencer is responsible for.
func (s *Sequencer) Height() int { return s.height }

// Source returns the pole the tower starts on.
func (s *Sequencer) Source() Pole { return s.source }

// Destination returns the pole the tower ends on.
func (s *Sequencer) Destination() Pole { return s.destination }

// Buffer returns the spare pole.
func (s *Sequencer) Buffer() Pole { return s.buffer }

// Depth returns the number of live sequencers on the ownership chain rooted
// at s, s included. It never exceeds Height.
func (s *Sequencer) Depth() int {
	depth := 0
	for cur := s; cur != nil; cur = cur.child {
		depth++
	}
	return depth
}
