package graphql

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/graphql-go/graphql"
)

const maxRequestBytes = 1 << 20

var errEmptyQuery = errors.New("query is required")

// GraphQLRequest is the body of a POST, or the query string of a GET.
type GraphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type GraphQLResponse struct {
	Data   any            `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLHandler serves a schema over HTTP. Execution errors, including
// depth violations, are returned in the body with status 200; only
// malformed requests get a 4xx.
type GraphQLHandler struct {
	schema   graphql.Schema
	maxDepth int
	logger   logging.Logger
}

// NewGraphQLHandler creates a new GraphQL HTTP handler. maxDepth <= 0
// selects DefaultMaxDepth.
func NewGraphQLHandler(schema graphql.Schema, maxDepth int, logger logging.Logger) *GraphQLHandler {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GraphQLHandler{
		schema:   schema,
		maxDepth: maxDepth,
		logger:   logger.With(logging.Component("graphql")),
	}
}

// decodeRequest reads a GET query string or a JSON POST body.
func decodeRequest(w http.ResponseWriter, r *http.Request) (GraphQLRequest, error) {
	var req GraphQLRequest

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return req, errors.New("variables must be a JSON object")
			}
		}
	} else if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		return req, errors.New("invalid request body")
	}

	if strings.TrimSpace(req.Query) == "" {
		return req, errEmptyQuery
	}
	return req, nil
}

func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodOptions:
		// CORS headers come from the server middleware
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeRequest(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := Execute(r.Context(), h.schema, req, h.maxDepth)

	resp := GraphQLResponse{Data: result.Data}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, GraphQLError{Message: e.Message})
	}
	if len(resp.Errors) > 0 {
		h.logger.Debug("graphql query returned errors",
			logging.Count(len(resp.Errors)),
			logging.String("operation", req.OperationName))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode graphql response", logging.Error(err))
	}
}
