// Package watchlist loads the tracked-symbol list and feed credentials.
package watchlist

import (
	"fmt"
	"os"
	"strings"
)

// LoadSymbols reads one symbol per line from path and normalizes every entry.
// Blank lines are skipped and duplicates removed, first occurrence wins.
// A missing file yields an empty watchlist, not an error.
func LoadSymbols(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}

	seen := make(map[string]struct{})
	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		s = Normalize(s)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

// Normalize upcases a symbol and applies the feed's naming rules: an exchange
// prefix (NSE: unless BSE:/MCX: is already given) and an -EQ series suffix
// for non-index instruments.
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "NSE:") && !strings.HasPrefix(s, "BSE:") && !strings.HasPrefix(s, "MCX:") {
		s = "NSE:" + s
	}
	if !strings.HasSuffix(s, "-EQ") && !strings.Contains(s, "-INDEX") {
		s += "-EQ"
	}
	return s
}

// LoadAccessToken reads and trims the token file. The feed cannot be started
// without a token, so a missing or empty file is an error.
func LoadAccessToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("access token file %s is empty", path)
	}
	return token, nil
}
