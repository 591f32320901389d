package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/storefront-ai/internal/entity"
)

// decodeModelJSON parses model output into out. Every name in required must be present
// and non-empty (not null, "", [], {}, 0 or false), otherwise ErrMalformedOutput is returned.
func decodeModelJSON(raw string, out any, required ...string) error {
	data := []byte(stripCodeFence(raw))
	if len(data) == 0 {
		return fmt.Errorf("%w: empty output", entity.ErrMalformedOutput)
	}

	if len(required) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrMalformedOutput, err)
		}
		for _, name := range required {
			value, ok := fields[name]
			if !ok || isEmptyJSON(value) {
				return fmt.Errorf("%w: missing field %q", entity.ErrMalformedOutput, name)
			}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrMalformedOutput, err)
	}

	return nil
}

func isEmptyJSON(value json.RawMessage) bool {
	switch string(bytes.TrimSpace(value)) {
	case "", "null", `""`, "[]", "{}", "0", "false":
		return true
	}
	return false
}

// stripCodeFence removes a surrounding ```json ... ``` block that small models like to add
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

// Lenient coercions for loosely typed model output

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
			return "", false
		}
		return s, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		// tolerate "50,000", "$50000" and "50000 rupees"
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			if r == ',' || r == '$' || r == ' ' {
				return -1
			}
			return '|'
		}, strings.TrimSpace(t))
		if i := strings.IndexByte(cleaned, '|'); i >= 0 {
			cleaned = cleaned[:i]
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := asString(item); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if s, ok := asString(part); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
