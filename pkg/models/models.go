/*
Package models defines the wire structures shared by the CLI JSON output
and the HTTP API.

These models are used for:
- **Move streams**: one MoveRecord per emitted move, in JSON or NDJSON.
- **API responses**: counts, health and errors returned by the server.
*/
package models

// MoveRecord is the JSON representation of a single move.
type MoveRecord struct {
	Index uint64 `json:"index"` // Position of the move in the sequence, starting at 1.
	From  string `json:"from"`  // Pole the disc leaves.
	To    string `json:"to"`    // Pole the disc lands on.
	Move  string `json:"move"`  // Compact label, e.g. "A->C".
}

// CountResponse reports the length of a full solution without generating it.
// Total is a decimal string because it overflows uint64 above height 64.
type CountResponse struct {
	Height int    `json:"height"`
	Total  string `json:"total"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
