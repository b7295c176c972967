// =============================================================================
// Sales Analytics - Raw Line Reader
// =============================================================================
//
// This file handles reading the raw sales export from disk. Legacy exports
// arrive in unpredictable encodings, so reading happens in two stages:
//
//   1. Try each configured encoding in order (utf-8, then latin-1, then
//      cp1252 by default) and use the first one that decodes cleanly.
//   2. If none decode cleanly, fall back to a permissive decode that
//      replaces undecodable bytes instead of aborting the run.
//
// The header row and blank lines are stripped here so that the parser only
// ever sees candidate data lines.
//
// =============================================================================

package salesparser

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadLines reads the sales export at path and returns its data lines.
//
// PARAMETERS:
//   - path:      The path to the export file.
//   - encodings: Ordered encoding names to attempt (utf-8, latin-1, cp1252).
//
// RETURNS:
//   - The trimmed, non-empty data lines with the header row removed.
//   - An error only when the file itself cannot be read; decoding problems
//     are always recovered.
func ReadLines(path string, encodings []string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales data file %s: %w", path, err)
	}

	text := decodeWithFallback(raw, encodings)
	return splitDataLines(text), nil
}

// decodeWithFallback tries each encoding in order and returns the first
// clean decode. When every attempt fails it replaces undecodable bytes
// with the Unicode replacement character rather than giving up.
func decodeWithFallback(raw []byte, encodings []string) string {
	for _, name := range encodings {
		if text, ok := decode(raw, name); ok {
			return text
		}
	}
	// Permissive fallback: keep what is readable, replace the rest.
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

// decode attempts a single decode of raw with the named encoding.
func decode(raw []byte, name string) (string, bool) {
	switch name {
	case "utf-8":
		if utf8.Valid(raw) {
			return string(raw), true
		}
		return "", false
	case "latin-1":
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		return string(text), true
	case "cp1252":
		text, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		return string(text), true
	default:
		return "", false
	}
}

// splitDataLines splits decoded text into lines, drops the header row and
// any blank lines, and trims surrounding whitespace.
func splitDataLines(text string) []string {
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var lines []string
	headerSkipped := false
	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// The first non-empty line is the column header.
		if !headerSkipped {
			headerSkipped = true
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
