// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/danielhkuo/quickly-poll/poll"
)

// stringParam returns the string held by raw. ok is false when the field
// is absent, null, or not a JSON string.
func stringParam(raw json.RawMessage) (s string, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// describe renders a request field for an error message: undefined when
// absent, the contents of a string, the JSON text of anything else
func describe(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "undefined"
	}
	if s, ok := stringParam(raw); ok {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func isJSONNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// minutesParam validates the poll duration. msg is empty on success.
func minutesParam(raw json.RawMessage) (minutes int, msg string) {
	var f float64
	if !isJSONNumber(raw) || json.Unmarshal(raw, &f) != nil {
		return 0, fmt.Sprintf("'minutes' is not a number: %s", describe(raw))
	}
	if math.IsNaN(f) || f < 1 || math.Trunc(f) != f {
		return 0, fmt.Sprintf("'minutes' is not a positive integer: %s", describe(raw))
	}
	if f > poll.MaxMinutes {
		return 0, fmt.Sprintf("'minutes' is too large: %s", describe(raw))
	}
	return int(f), ""
}

// optionsParam validates the option list. msg is empty on success. The
// minimum count is left to the store.
func optionsParam(raw json.RawMessage) (options []string, msg string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Sprintf("'options' is not an array: %s", describe(raw))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Sprintf("'options' is not an array: %s", describe(raw))
	}

	options = make([]string, 0, len(items))
	for _, item := range items {
		s, ok := stringParam(item)
		if !ok {
			return nil, "'options' must contain only strings"
		}
		options = append(options, s)
	}
	return options, ""
}
