package graphql

import (
	"testing"
)

func countInteractions(t *testing.T, limits *LimitConfig, query string) int {
	t.Helper()
	data := execute(t, setupSchema(t, limits), query)
	return len(data["analyze"].(map[string]any)["interactions"].([]any))
}

// TestDefaultLimitApplied tests that default limit is applied when no limit specified
func TestDefaultLimitApplied(t *testing.T) {
	got := countInteractions(t, &LimitConfig{DefaultLimit: 10, MaxLimit: 20},
		`{ analyze(proteinId: "CHAIN", source: "BioGRID") { interactions { proteinA proteinB } } }`)
	if got != 10 {
		t.Errorf("Expected default limit of 10, got %d", got)
	}
}

// TestMaxLimitEnforced tests that requested limits are capped
func TestMaxLimitEnforced(t *testing.T) {
	got := countInteractions(t, &LimitConfig{DefaultLimit: 10, MaxLimit: 20},
		`{ analyze(proteinId: "CHAIN", source: "BioGRID") { interactions(limit: 500) { proteinA } } }`)
	if got != 20 {
		t.Errorf("Expected max limit of 20, got %d", got)
	}
}

// TestExplicitLimitWithinMax tests that an explicit limit is honoured
func TestExplicitLimitWithinMax(t *testing.T) {
	got := countInteractions(t, nil,
		`{ analyze(proteinId: "CHAIN", source: "BioGRID") { interactions(limit: 7) { proteinA } } }`)
	if got != 7 {
		t.Errorf("Expected 7 interactions, got %d", got)
	}
}

// TestZeroLimitReturnsEmpty tests that limit 0 returns nothing
func TestZeroLimitReturnsEmpty(t *testing.T) {
	got := countInteractions(t, nil,
		`{ analyze(proteinId: "CHAIN", source: "BioGRID") { interactions(limit: 0) { proteinA } } }`)
	if got != 0 {
		t.Errorf("Expected 0 interactions, got %d", got)
	}
}

// TestNegativeLimitTreatedAsDefault tests that a negative limit uses the default
func TestNegativeLimitTreatedAsDefault(t *testing.T) {
	got := countInteractions(t, &LimitConfig{DefaultLimit: 5, MaxLimit: 20},
		`{ analyze(proteinId: "CHAIN", source: "BioGRID") { interactions(limit: -3) { proteinA } } }`)
	if got != 5 {
		t.Errorf("Expected default limit of 5, got %d", got)
	}
}

// TestLimitConfigValidation tests limit configuration validation
func TestLimitConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  LimitConfig
		wantErr bool
	}{
		{"valid", LimitConfig{DefaultLimit: 100, MaxLimit: 1000}, false},
		{"default equals max", LimitConfig{DefaultLimit: 50, MaxLimit: 50}, false},
		{"default exceeds max", LimitConfig{DefaultLimit: 200, MaxLimit: 100}, true},
		{"zero max", LimitConfig{DefaultLimit: 0, MaxLimit: 0}, true},
		{"zero default", LimitConfig{DefaultLimit: 0, MaxLimit: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := GenerateSchema(nil, &LimitConfig{DefaultLimit: 5, MaxLimit: 1}); err == nil {
		t.Error("Expected GenerateSchema to reject an invalid limit config")
	}
}

func TestLimitConfigResolve(t *testing.T) {
	c := &LimitConfig{DefaultLimit: 10, MaxLimit: 50}
	tests := []struct {
		args map[string]any
		want int
	}{
		{map[string]any{}, 10},
		{map[string]any{"limit": -1}, 10},
		{map[string]any{"limit": 0}, 0},
		{map[string]any{"limit": 25}, 25},
		{map[string]any{"limit": 51}, 50},
		{map[string]any{"limit": "5"}, 10},
	}
	for _, tt := range tests {
		if got := c.Resolve(tt.args); got != tt.want {
			t.Errorf("Resolve(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}
