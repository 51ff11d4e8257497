package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/dd0wney/ppinet/pkg/report"
	"github.com/dd0wney/ppinet/pkg/visualization"
)

// Output formats of /analyze
const (
	FormatJSON  = "json"
	FormatXLSX  = "xlsx"
	FormatTable = "table"
)

const (
	contentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeSnappy = "application/x-snappy"
)

// analyzeParams are the output options of /analyze, taken from the query
// string
type analyzeParams struct {
	format   string
	pretty   bool
	compress bool
}

// handleAnalyze runs one analysis. POST takes a JSON AnalyzeRequest; GET
// takes protein_id, source, layout and metric query parameters.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() {
			var req AnalyzeRequest
			if s.NewRequestDecoder(w, r).DecodeJSON(&req).RespondError() {
				return
			}
			s.analyze(w, r, req)
		}).
		Get(func() {
			var req AnalyzeRequest
			if s.NewRequestDecoder(w, r).
				QueryString("protein_id", &req.ProteinID).
				QueryString("source", &req.Source).
				QueryString("layout", &req.Layout).
				QueryString("metric", &req.Metric).
				RespondError() {
				return
			}
			s.analyze(w, r, req)
		}).
		NotAllowed()
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req AnalyzeRequest) {
	params := analyzeParams{format: FormatJSON}
	if s.NewRequestDecoder(w, r).
		QueryEnum("format", &params.format, FormatJSON, FormatXLSX, FormatTable).
		QueryBool("pretty", &params.pretty).
		QueryBool("compress", &params.compress).
		RespondError() {
		return
	}

	ctx := r.Context()
	if s.analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.analyzeTimeout)
		defer cancel()
	}

	rep, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		status, message := statusForError(err)
		logger := logging.FromContext(r.Context())
		if status >= http.StatusInternalServerError {
			logger.Error("analysis request failed", logging.Protein(req.ProteinID), logging.Error(err))
		}
		s.respondError(w, status, message)
		return
	}

	s.writeReport(w, rep, params)
}

func (s *Server) writeReport(w http.ResponseWriter, rep *pipeline.Report, params analyzeParams) {
	switch params.format {
	case FormatXLSX:
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, rep); err != nil {
			s.logger.Error("failed to write workbook", logging.Error(err))
			s.respondError(w, http.StatusInternalServerError, "failed to write workbook")
			return
		}
		w.Header().Set("Content-Type", contentTypeXLSX)
		w.Header().Set("Content-Disposition", `attachment; filename="`+rep.ProteinID+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())

	case FormatTable:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = report.WriteTable(w, rep, report.TableOptions{})

	default:
		data, err := report.MarshalJSON(rep, report.JSONOptions{Pretty: params.pretty, Compress: params.compress})
		if err != nil {
			s.logger.Error("failed to encode report", logging.Error(err))
			s.respondError(w, http.StatusInternalServerError, "failed to encode report")
			return
		}
		if params.compress {
			w.Header().Set("Content-Type", contentTypeSnappy)
		} else {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() {
			resp := SourcesResponse{Sources: interactions.SourceNames()}
			for _, m := range algorithms.AllMetrics {
				resp.Metrics = append(resp.Metrics, string(m))
			}
			for _, k := range visualization.LayoutKinds {
				resp.Layouts = append(resp.Layouts, string(k))
			}
			s.respondJSON(w, http.StatusOK, resp)
		}).
		NotAllowed()
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() {
			s.respondJSON(w, http.StatusOK, VersionResponse{
				Version: s.version,
				Started: s.startTime,
				Uptime:  time.Since(s.startTime).Round(time.Second).String(),
			})
		}).
		NotAllowed()
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if s.graphqlHandler == nil {
		s.respondError(w, http.StatusServiceUnavailable, "GraphQL endpoint not available")
		return
	}
	s.graphqlHandler.ServeHTTP(w, r)
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.metricsRegistry.GetPrometheusRegistry(), promhttp.HandlerOpts{})
}
