package interactions

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/ppinet/pkg/network"
	"golang.org/x/exp/mmap"
)

// Edge-list extensions tried in order.
var edgeListExtensions = []string{".tsv", ".csv"}

// FileFetcher reads edge lists from <Dir>/<source>/<identifier>.tsv or .csv.
// Each record holds two protein identifiers; further columns (scores,
// evidence codes) are ignored. A leading ProteinA/ProteinB header and lines
// starting with '#' are skipped.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

// FetchInteractions reads the edge list of identifier. A missing file
// yields an empty list.
func (f *FileFetcher) FetchInteractions(ctx context.Context, identifier string, source Source) ([]network.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstreamError(source, identifier, err)
	}
	if !source.Valid() {
		return nil, upstreamError(source, identifier, fmt.Errorf("%w: %q", ErrUnknownSource, string(source)))
	}
	if strings.ContainsAny(identifier, `/\`) || identifier == ".." {
		return nil, upstreamError(source, identifier, errors.New("identifier is not a valid file name"))
	}

	for _, ext := range edgeListExtensions {
		path := filepath.Join(f.Dir, string(source), identifier+ext)
		edges, err := ReadEdgeListFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, upstreamError(source, identifier, err)
		}
		return edges, nil
	}
	return []network.Edge{}, nil
}

// ReadEdgeListFile memory-maps path and parses it as an edge list. The
// delimiter is a tab for .tsv files and a comma otherwise.
func ReadEdgeListFile(path string) ([]network.Edge, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	delim := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}

	edges, err := ParseEdgeList(io.NewSectionReader(reader, 0, int64(reader.Len())), delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

// ParseEdgeList reads delimiter-separated protein pairs from r.
func ParseEdgeList(r io.Reader, delim rune) ([]network.Edge, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	edges := make([]network.Edge, 0)
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		if len(record) < 2 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected two protein identifiers, got %d field(s)", line, len(record))
		}
		edges = append(edges, network.Edge{
			A: strings.TrimSpace(record[0]),
			B: strings.TrimSpace(record[1]),
		})
	}
	return edges, nil
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	a := strings.ToLower(strings.TrimSpace(record[0]))
	b := strings.ToLower(strings.TrimSpace(record[1]))
	return (a == "proteina" || a == "protein_a") && (b == "proteinb" || b == "protein_b")
}
