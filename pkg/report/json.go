package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/golang/snappy"
	"github.com/tidwall/pretty"
)

// JSONOptions controls JSON export
type JSONOptions struct {
	Pretty   bool // indent for reading
	Compress bool // snappy block compression; implies compact output
}

// MarshalJSON encodes the report.
func MarshalJSON(r *pipeline.Report, opts JSONOptions) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if opts.Compress {
		return snappy.Encode(nil, data), nil
	}
	if opts.Pretty {
		data = pretty.Pretty(data)
	}
	return data, nil
}

// WriteJSON encodes the report to w.
func WriteJSON(w io.Writer, r *pipeline.Report, opts JSONOptions) error {
	data, err := MarshalJSON(r, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// UnmarshalJSON decodes a report written by MarshalJSON. Fields tagged "-"
// such as the graph are not restored.
func UnmarshalJSON(data []byte, compressed bool) (*pipeline.Report, error) {
	if compressed {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress report: %w", err)
		}
		data = decoded
	}
	var r pipeline.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}
