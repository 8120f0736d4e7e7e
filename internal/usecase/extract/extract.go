// Package extract pulls typed fields out of model JSON replies.
//
// Models asked for "JSON only" still wrap replies in prose or code fences
// often enough that every caller needs the same salvage-and-default logic.
package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Doc parses a model reply as a JSON document. It tolerates ``` fences and
// surrounding prose by trying the widest {...} slice when the raw reply
// does not parse.
func Doc(reply string) (any, error) {
	s := strings.TrimSpace(reply)
	if s == "" {
		return nil, errors.New("empty reply")
	}

	if doc, err := parse(s); err == nil {
		return doc, nil
	}

	s = stripFences(s)
	if doc, err := parse(s); err == nil {
		return doc, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		if doc, err := parse(s[start : end+1]); err == nil {
			return doc, nil
		}
	}

	return nil, errors.New("reply is not valid JSON")
}

// String evaluates a JSONPath expression and returns the string value,
// or fallback when the path is missing or not a string.
func String(doc any, expr, fallback string) string {
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return fallback
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Float evaluates a JSONPath expression and returns the numeric value,
// or fallback when the path is missing or not a number.
func Float(doc any, expr string, fallback float64) float64 {
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return fallback
	}
}

// Int evaluates a JSONPath expression and returns the integer value,
// or fallback. JSON numbers arrive as float64; fractional values are
// truncated toward zero.
func Int(doc any, expr string, fallback int) int {
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	default:
		return fallback
	}
}

func parse(s string) (any, error) {
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the fence line.
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
