package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
)

// requestDecoder chains body and query-string parsing. The first failure
// sticks and every later step is skipped; RespondError ends the chain.
type requestDecoder struct {
	r      *http.Request
	w      http.ResponseWriter
	server *Server
	err    error
	status int
}

func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{r: r, w: w, server: s}
}

// DecodeJSON decodes the body into v, rejecting unknown fields. A body cut
// off by the size limit is a 413.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	dec := json.NewDecoder(rd.r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
	case errors.As(err, &tooLarge):
		rd.fail(http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, io.EOF):
		rd.fail(http.StatusBadRequest, errors.New("request body is empty"))
	default:
		rd.fail(http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
	}
	return rd
}

// query runs parse on the named parameter when it is present and non-empty.
func (rd *requestDecoder) query(name string, parse func(string) error) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if v := rd.r.URL.Query().Get(name); v != "" {
		if err := parse(v); err != nil {
			rd.fail(http.StatusBadRequest, err)
		}
	}
	return rd
}

func (rd *requestDecoder) QueryString(name string, dst *string) *requestDecoder {
	return rd.query(name, func(v string) error {
		*dst = v
		return nil
	})
}

func (rd *requestDecoder) QueryBool(name string, dst *bool) *requestDecoder {
	return rd.query(name, func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s parameter %q", name, v)
		}
		*dst = b
		return nil
	})
}

// QueryEnum reads name into dst and rejects values outside allowed. dst
// keeps its default when the parameter is absent.
func (rd *requestDecoder) QueryEnum(name string, dst *string, allowed ...string) *requestDecoder {
	return rd.query(name, func(v string) error {
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("invalid %s %q (allowed: %v)", name, v, allowed)
		}
		*dst = v
		return nil
	})
}

func (rd *requestDecoder) fail(status int, err error) {
	rd.err, rd.status = err, status
}

// RespondError writes the pending error, if any, and reports whether it did.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.status, rd.err.Error())
	return true
}

// methodRouter dispatches on r.Method. The first matching handler runs;
// NotAllowed answers 405 when none did.
type methodRouter struct {
	w       http.ResponseWriter
	r       *http.Request
	server  *Server
	allowed []string
	done    bool
}

func (s *Server) NewMethodRouter(w http.ResponseWriter, r *http.Request) *methodRouter {
	return &methodRouter{w: w, r: r, server: s}
}

func (mr *methodRouter) handle(method string, handler func()) *methodRouter {
	mr.allowed = append(mr.allowed, method)
	if !mr.done && mr.r.Method == method {
		mr.done = true
		handler()
	}
	return mr
}

func (mr *methodRouter) Get(handler func()) *methodRouter {
	return mr.handle(http.MethodGet, handler)
}

func (mr *methodRouter) Post(handler func()) *methodRouter {
	return mr.handle(http.MethodPost, handler)
}

func (mr *methodRouter) NotAllowed() {
	if mr.done {
		return
	}
	for _, m := range mr.allowed {
		mr.w.Header().Add("Allow", m)
	}
	mr.server.respondError(mr.w, http.StatusMethodNotAllowed, "Method not allowed")
}
