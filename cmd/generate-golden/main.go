package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Height      int      `json:"height"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Buffer      string   `json:"buffer"`
	Moves       []string `json:"moves"`
}

type poles struct {
	source, destination, buffer byte
}

type goldenCase struct {
	height int
	poles  poles
}

func main() {
	outputDir := flag.String("out", "internal/hanoi/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "hanoi_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Cases:
	// - Every height from 1 to 8 on the default poles
	// - Heights 3 and 5 on three other pole permutations
	var cases []goldenCase
	for h := 1; h <= 8; h++ {
		cases = append(cases, goldenCase{h, poles{'A', 'C', 'B'}})
	}
	for _, p := range []poles{{'A', 'B', 'C'}, {'C', 'A', 'B'}, {'B', 'C', 'A'}} {
		for _, h := range []int{3, 5} {
			cases = append(cases, goldenCase{h, p})
		}
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, c := range cases {
		moves := solve(c.height, c.poles.source, c.poles.destination, c.poles.buffer, nil)
		data = append(data, GoldenData{
			Height:      c.height,
			Source:      string(c.poles.source),
			Destination: string(c.poles.destination),
			Buffer:      string(c.poles.buffer),
			Moves:       moves,
		})
		fmt.Printf("Generated height %d %c->%c via %c (%d moves)\n",
			c.height, c.poles.source, c.poles.destination, c.poles.buffer, len(moves))
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// solve appends the complete solution to moves using the textbook eager
// recursion. It shares no code with the sequencer it is checked against.
func solve(height int, source, destination, buffer byte, moves []string) []string {
	if height == 0 {
		return moves
	}
	moves = solve(height-1, source, buffer, destination, moves)
	moves = append(moves, string([]byte{source, '-', '>', destination}))
	return solve(height-1, buffer, destination, source, moves)
}
