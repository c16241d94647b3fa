// Package normalize turns free-form model output into structured records.
//
// Generation models wrap their JSON in prose, markdown fences, or both. The
// extraction here is deliberately string-based: strip a code fence if one
// leads the text, then scan for the outermost bracket pair and parse what is
// between. Records are returned as raw JSON; no field-level validation is
// performed, downstream consumers tolerate missing or extra fields.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

const fenceMarker = "```"

// Parse extracts an ordered sequence of JSON records from raw model output.
// It fails with *domain.MalformedOutputError when no parseable structure is
// found, carrying the raw text for diagnostics.
func Parse(raw string) ([]json.RawMessage, error) {
	text := StripFence(strings.TrimSpace(raw))

	if fragment, ok := sliceBetween(text, '[', ']'); ok {
		records, err := decodeRecords(fragment)
		if err != nil {
			return nil, &domain.MalformedOutputError{Raw: raw}
		}
		return records, nil
	}

	if fragment, ok := sliceBetween(text, '{', '}'); ok {
		var obj json.RawMessage
		if err := json.Unmarshal([]byte(fragment), &obj); err != nil {
			return nil, &domain.MalformedOutputError{Raw: raw}
		}
		return []json.RawMessage{obj}, nil
	}

	return nil, &domain.MalformedOutputError{Raw: raw}
}

// StripFence removes a leading markdown code fence. The text is split on the
// fence marker, the middle segment is kept, and a leading "json" language tag
// is dropped.
func StripFence(text string) string {
	if !strings.HasPrefix(text, fenceMarker) {
		return text
	}
	parts := strings.Split(text, fenceMarker)
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	if strings.HasPrefix(inner, "json") {
		inner = inner[len("json"):]
	}
	return strings.TrimSpace(inner)
}

// sliceBetween returns the inclusive slice from the first open delimiter to
// the last close delimiter, or ok=false when either is missing.
func sliceBetween(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeRecords parses a JSON array into its elements. A single object is
// wrapped into a one-element sequence, normalizing inconsistent output shape.
func decodeRecords(fragment string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(fragment), &records); err == nil {
		return records, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(fragment), &obj); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return []json.RawMessage{raw}, nil
}
