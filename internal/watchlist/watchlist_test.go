package watchlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sbin", "NSE:SBIN-EQ"},
		{"SBIN", "NSE:SBIN-EQ"},
		{"NSE:SBIN", "NSE:SBIN-EQ"},
		{"NSE:SBIN-EQ", "NSE:SBIN-EQ"},
		{"BSE:RELIANCE", "BSE:RELIANCE-EQ"},
		{"MCX:CRUDEOIL", "MCX:CRUDEOIL-EQ"},
		{"NSE:NIFTY50-INDEX", "NSE:NIFTY50-INDEX"},
		{"nifty50-index", "NSE:NIFTY50-INDEX"},
		{"  tcs  ", "NSE:TCS-EQ"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadSymbols(t *testing.T) {
	path := writeTempFile(t, "sbin\n\nNSE:TCS\nreliance\nSBIN\n  \nbse:infy\n")

	symbols, err := LoadSymbols(path)
	if err != nil {
		t.Fatalf("LoadSymbols: %v", err)
	}

	want := []string{"NSE:SBIN-EQ", "NSE:TCS-EQ", "NSE:RELIANCE-EQ", "BSE:INFY-EQ"}
	if len(symbols) != len(want) {
		t.Fatalf("got %d symbols %v, want %d", len(symbols), symbols, len(want))
	}
	for i, w := range want {
		if symbols[i] != w {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], w)
		}
	}
}

func TestLoadSymbols_MissingFile(t *testing.T) {
	symbols, err := LoadSymbols(filepath.Join(t.TempDir(), "nonexistent.txt"))
	if err != nil {
		t.Fatalf("missing watchlist must not be an error, got %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("expected empty watchlist, got %v", symbols)
	}
}

func TestLoadAccessToken(t *testing.T) {
	path := writeTempFile(t, "  secret-token-123  \n")

	token, err := LoadAccessToken(path)
	if err != nil {
		t.Fatalf("LoadAccessToken: %v", err)
	}
	if token != "secret-token-123" {
		t.Errorf("token = %q, want %q", token, "secret-token-123")
	}
}

func TestLoadAccessToken_Missing(t *testing.T) {
	if _, err := LoadAccessToken(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing token file")
	}
}

func TestLoadAccessToken_Empty(t *testing.T) {
	path := writeTempFile(t, "   \n")
	if _, err := LoadAccessToken(path); err == nil {
		t.Error("expected error for empty token file")
	}
}
