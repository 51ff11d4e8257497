package api

import (
	"time"

	"github.com/dd0wney/ppinet/pkg/pipeline"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest = pipeline.Request

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SourcesResponse lists the interaction databases and centrality metrics
// the server understands
type SourcesResponse struct {
	Sources []string `json:"sources"`
	Metrics []string `json:"metrics"`
	Layouts []string `json:"layouts"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version string    `json:"version"`
	Started time.Time `json:"started"`
	Uptime  string    `json:"uptime"`
}
