package model

import (
	"encoding/json"
	"strings"
)

// StringList is an ordered list of strings that accepts flexible wire
// input: a JSON array of strings, or a single string holding either a
// JSON-encoded array or comma-separated values. Every element is
// trimmed and empty elements are dropped. This is the one parser for
// band members and favorite track IDs.
type StringList []string

// UnmarshalJSON implements the flexible input contract.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = cleanStrings(raw)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = ParseStringList(s)
	return nil
}

// ParseStringList parses a single string into a StringList. A string
// that looks like a JSON array is decoded as one; anything else is
// split on commas.
func ParseStringList(s string) StringList {
	s = strings.TrimSpace(s)
	if s == "" {
		return StringList{}
	}
	if strings.HasPrefix(s, "[") {
		var raw []string
		if err := json.Unmarshal([]byte(s), &raw); err == nil {
			return cleanStrings(raw)
		}
	}
	return cleanStrings(strings.Split(s, ","))
}

func cleanStrings(raw []string) StringList {
	out := make(StringList, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
