package hanoi

import (
	"testing"
)

// poleTriples lists the six orderings of the conventional pole labels as
// (source, destination, buffer).
var poleTriples = [6][3]Pole{
	{A, C, B},
	{A, B, C},
	{B, A, C},
	{B, C, A},
	{C, A, B},
	{C, B, A},
}

// recursiveSolution is the eager, textbook recursion the lazy sequencer
// must agree with move for move.
func recursiveSolution(height int, source, destination, buffer Pole) []Move {
	if height <= 0 {
		return nil
	}
	moves := recursiveSolution(height-1, source, buffer, destination)
	moves = append(moves, Move{From: source, To: destination})
	return append(moves, recursiveSolution(height-1, buffer, destination, source)...)
}

// mustNew builds a sequencer or fails the test.
func mustNew(t testing.TB, height int, source, destination, buffer Pole) *Sequencer {
	t.Helper()
	s, err := New(height, source, destination, buffer)
	if err != nil {
		t.Fatalf("New(%d, %s, %s, %s) error: %v", height, source, destination, buffer, err)
	}
	return s
}

// drain collects every remaining move or fails the test.
func drain(t testing.TB, s *Sequencer) []Move {
	t.Helper()
	moves, err := Collect(s)
	if err != nil {
		t.Fatalf("Collect() error after %d moves: %v", len(moves), err)
	}
	return moves
}

func movesEqual(a, b []Move) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func parseMoves(t testing.TB, labels []string) []Move {
	t.Helper()
	moves := make([]Move, len(labels))
	for i, label := range labels {
		if len(label) != 4 || label[1:3] != "->" {
			t.Fatalf("malformed move label %q", label)
		}
		from, err := ParsePole(label[:1])
		if err != nil {
			t.Fatalf("label %q: %v", label, err)
		}
		to, err := ParsePole(label[3:])
		if err != nil {
			t.Fatalf("label %q: %v", label, err)
		}
		moves[i] = Move{From: from, To: to}
	}
	return moves
}
