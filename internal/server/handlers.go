package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/hanoi/internal/cli"
	"github.com/agbru/hanoi/internal/config"
	"github.com/agbru/hanoi/internal/hanoi"
	"github.com/agbru/hanoi/internal/logging"
	"github.com/agbru/hanoi/pkg/models"
)

// MaxCountHeight is the largest height /count accepts. Nothing is generated
// for a count; the cap only bounds the size of the returned number.
const MaxCountHeight = 1 << 16

// TotalMovesHeader carries the length of the streamed sequence.
const TotalMovesHeader = "X-Total-Moves"

var contentTypes = map[string]string{
	config.FormatNDJSON: "application/x-ndjson",
	config.FormatJSON:   "application/json",
	config.FormatText:   "text/plain; charset=utf-8",
}

// RequestParseError is returned when query parameters are missing or invalid.
type RequestParseError struct {
	Message    string
	StatusCode int
}

func (e RequestParseError) Error() string { return e.Message }

func badRequest(format string, args ...any) RequestParseError {
	return RequestParseError{Message: fmt.Sprintf(format, args...), StatusCode: http.StatusBadRequest}
}

// movesParams holds a validated /moves request.
type movesParams struct {
	height int
	from   hanoi.Pole
	to     hanoi.Pole
	via    hanoi.Pole
	format string
}

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

// handleCount returns the number of moves of a full solution without
// generating it.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	height, err := parseHeight(r.URL.Query().Get("height"), MaxCountHeight)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, models.CountResponse{
		Height: height,
		Total:  hanoi.TotalMoves(height).String(),
	})
}

// handleMoves streams the solution of one tower. A fresh sequencer is built
// for every request and drained straight into the response, so memory use
// depends on the height only.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params, err := s.parseMovesParams(r)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	seq, err := hanoi.New(params.height, params.from, params.to, params.via)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "hanoi.stream_moves", trace.WithAttributes(
		attribute.Int("hanoi.height", params.height),
		attribute.String("hanoi.from", params.from.String()),
		attribute.String("hanoi.to", params.to.String()),
		attribute.String("hanoi.via", params.via.String()),
		attribute.String("hanoi.format", params.format),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.RequestTimeout)
	defer cancel()

	w.Header().Set("Content-Type", contentTypes[params.format])
	w.Header().Set(TotalMovesHeader, hanoi.TotalMoves(params.height).String())
	w.WriteHeader(http.StatusOK)

	start := time.Now()
	emitted, err := cli.StreamMoves(ctx, seq, w, cli.StreamOptions{Format: params.format}, nil)
	s.metrics.ObserveStream(emitted, time.Since(start))
	span.SetAttributes(attribute.Int64("hanoi.emitted", int64(emitted)))
	if err != nil {
		// The status line is already sent; the client sees a truncated body.
		span.RecordError(err)
		span.SetStatus(codes.Error, "move stream interrupted")
		s.logger.Error("move stream interrupted", err,
			logging.Int("height", params.height),
			logging.Uint64("emitted", emitted))
	}
}

// parseMovesParams extracts and validates the /moves query parameters.
// Poles default to A, C and B; the format defaults to ndjson.
//
// Returns:
//   - movesParams: The validated parameters.
//   - error: A RequestParseError if validation fails, nil otherwise.
func (s *Server) parseMovesParams(r *http.Request) (movesParams, error) {
	q := r.URL.Query()

	height, err := parseHeight(q.Get("height"), s.maxHeight)
	if err != nil {
		return movesParams{}, err
	}
	p := movesParams{height: height}

	poles := []struct {
		name string
		def  hanoi.Pole
		dst  *hanoi.Pole
	}{
		{"from", config.DefaultFrom, &p.from},
		{"to", config.DefaultTo, &p.to},
		{"via", config.DefaultVia, &p.via},
	}
	for _, pole := range poles {
		raw := q.Get(pole.name)
		if raw == "" {
			*pole.dst = pole.def
			continue
		}
		parsed, err := hanoi.ParsePole(raw)
		if err != nil {
			return movesParams{}, badRequest("Invalid '%s' parameter: %v", pole.name, err)
		}
		*pole.dst = parsed
	}
	if p.from == p.to || p.from == p.via || p.to == p.via {
		return movesParams{}, badRequest("Poles must be distinct, got from=%s to=%s via=%s", p.from, p.to, p.via)
	}

	p.format = strings.ToLower(q.Get("format"))
	if p.format == "" {
		p.format = config.FormatNDJSON
	}
	if _, ok := contentTypes[p.format]; !ok {
		return movesParams{}, badRequest("Invalid 'format' parameter: must be one of ndjson, text, json")
	}

	return p, nil
}

// parseHeight parses a required height parameter in [1, limit].
func parseHeight(raw string, limit int) (int, error) {
	if raw == "" {
		return 0, badRequest("Missing 'height' parameter")
	}
	height, err := strconv.Atoi(raw)
	if err != nil || height < 1 {
		return 0, badRequest("Invalid 'height' parameter: must be a positive integer")
	}
	if height > limit {
		return 0, badRequest("Value of 'height' exceeds maximum allowed (%d)", limit)
	}
	return height, nil
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}

func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	if parseErr, ok := err.(RequestParseError); ok {
		s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}
