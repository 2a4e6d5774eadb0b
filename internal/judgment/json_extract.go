package judgment

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var errNoJSON = errors.New("no valid JSON value found in response")

// codeBlockPattern matches fenced blocks with an optional language tag.
var codeBlockPattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// ExtractJSON pulls a JSON value out of a completion that may wrap it in a
// markdown fence or surround it with prose. Fenced json (or untagged) blocks
// win over raw brackets.
func ExtractJSON(response string) (string, error) {
	for _, m := range codeBlockPattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		if content := strings.TrimSpace(m[2]); json.Valid([]byte(content)) {
			return content, nil
		}
	}

	start := strings.IndexAny(response, "{[")
	for start >= 0 {
		if s := matchBrackets(response[start:]); s != "" && json.Valid([]byte(s)) {
			return s, nil
		}
		next := strings.IndexAny(response[start+1:], "{[")
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", errNoJSON
}

// decodeResults reads {"results":[...]} or a bare array and decodes each
// element on its own, so one malformed item never discards the rest.
func decodeResults[T any](response string) []T {
	raw, err := ExtractJSON(response)
	if err != nil {
		return nil
	}

	var items []json.RawMessage
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil
		}
	} else {
		var envelope struct {
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
			return nil
		}
		items = envelope.Results
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// matchBrackets returns the prefix of s up to the bracket closing s[0],
// ignoring brackets inside strings. Empty when unbalanced.
func matchBrackets(s string) string {
	open := s[0]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
