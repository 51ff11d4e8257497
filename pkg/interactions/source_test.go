package interactions

import (
	"errors"
	"testing"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		input   string
		want    Source
		wantErr bool
	}{
		{"BioGRID", BioGRID, false},
		{"biogrid", BioGRID, false},
		{" STRING ", STRING, false},
		{"string", STRING, false},
		{"IntAct", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSource(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownSource) {
				t.Errorf("Expected ErrUnknownSource, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSource(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSourceValid(t *testing.T) {
	if !BioGRID.Valid() || !STRING.Valid() {
		t.Error("Known sources must be valid")
	}
	if Source("biogrid").Valid() {
		t.Error("Valid must not ignore case")
	}
	names := SourceNames()
	if len(names) != 2 || names[0] != "BioGRID" || names[1] != "STRING" {
		t.Errorf("SourceNames() = %v", names)
	}
}
