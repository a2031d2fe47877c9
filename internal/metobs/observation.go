// Package metobs decodes the brace-delimited observation strings carried by
// met reports, e.g. "{windDirection=120, windSpeed=10, unit=KT}".
//
// The format is lenient: tokens without '=' or with an empty key or value
// are dropped, and decoding never fails.
package metobs

import (
	"strings"

	"sirms/console/internal/models/dtos"
)

const (
	emptyObjectMarker = "{}"
	nullMarker        = "null"
)

// Field is one decoded key/value pair
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Parse decodes raw into a key/value mapping
func Parse(raw string) dtos.ParsedObservation {
	fields := ParseFields(raw)
	out := make(dtos.ParsedObservation, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// ParseFields decodes raw keeping the order in which keys first appear.
// A repeated key keeps its first position and its last value.
func ParseFields(raw string) []Field {
	s := strings.TrimSpace(raw)
	if s == "" || s == emptyObjectMarker || s == nullMarker {
		return nil
	}
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	var fields []Field
	index := make(map[string]int)
	for _, token := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if i, seen := index[key]; seen {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields
}

// ParseObservation decodes a RawObservation
func ParseObservation(raw dtos.RawObservation) dtos.ParsedObservation {
	return Parse(string(raw))
}
