package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/pipeline"
)

// StatusClientClosedRequest is reported when the client goes away before
// an analysis finishes
const StatusClientClosedRequest = 499

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	text := http.StatusText(status)
	if status == StatusClientClosedRequest {
		text = "Client Closed Request"
	}
	s.respondJSON(w, status, ErrorResponse{
		Error:   text,
		Message: message,
		Code:    status,
	})
}

// statusForError maps an analysis error to an HTTP status. Messages of
// client errors are passed through; server errors are replaced with a
// generic message.
func statusForError(err error) (int, string) {
	var validationErr *network.ValidationError
	var upstream *interactions.UpstreamFetchError

	switch {
	case errors.Is(err, pipeline.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, network.ErrEmptyNetwork):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "analysis timed out"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "request cancelled"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "interaction source unavailable: " + string(upstream.Source)
	case errors.As(err, &validationErr):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}
