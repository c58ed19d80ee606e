package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseInt reads a JSON number or a JSON string holding an integer.
// present is false for a missing or null value.
func parseInt(raw json.RawMessage) (value int64, present bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, false, nil
	}

	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0, true, err
		}
		text = strings.TrimSpace(text)
	}

	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, true, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, true, fmt.Errorf("%q is not an integer", text)
	}
	return int64(f), true, nil
}

func requireInt(field string, raw json.RawMessage) (int64, error) {
	v, present, err := parseInt(raw)
	if !present {
		return 0, fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrValidation, field, err)
	}
	return v, nil
}
