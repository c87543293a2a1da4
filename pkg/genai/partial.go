package genai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrIncomplete reports that a partial model output cannot be decoded yet and
// the caller should simply try again on the next frame. It replaces the
// swallow-and-ignore handling a naive incremental decoder ends up with.
var ErrIncomplete = errors.New("genai: partial output not decodable yet")

// DecodePartial decodes a possibly-truncated JSON document produced by an
// in-flight generation into v. Truncated documents are repaired by closing
// open strings, objects and arrays; tokens cut off mid-way are dropped back
// to the last complete boundary. Returns ErrIncomplete when no valid
// document can be recovered yet.
func DecodePartial(raw string, v any) error {
	completed, err := CompletePartial(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(completed), v); err != nil {
		return ErrIncomplete
	}
	return nil
}

// parser states inside the innermost container
const (
	expectKey      = iota // object: waiting for a key (after { or ,)
	expectColon           // object: key read, waiting for :
	expectValue           // object: colon read, waiting for the value
	expectObjComma        // object: value read, waiting for , or }
	expectArrValue        // array: waiting for a value (after [ or ,)
	expectArrComma        // array: value read, waiting for , or ]
)

type frame struct {
	open  byte // '{' or '['
	state int
	// start of the syntax run that would have to be discarded if the input
	// ends mid-member: the comma (or opening bracket position +1) preceding
	// the member currently being parsed
	memberStart int
}

// CompletePartial turns a truncated JSON document into a syntactically
// complete one. Markdown code fences around the document are stripped first,
// since models routinely wrap JSON in them.
func CompletePartial(raw string) (string, error) {
	s := stripFences(raw)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrIncomplete
	}
	s = s[start:]

	stack := []frame{}
	inString := false
	escaped := false
	inLiteral := false
	tokenStart := 0

	push := func(open byte, pos int) {
		st := expectKey
		if open == '[' {
			st = expectArrValue
		}
		stack = append(stack, frame{open: open, state: st, memberStart: pos + 1})
	}
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return &stack[len(stack)-1]
	}

	endValue := func() {
		if f := top(); f != nil {
			if f.open == '{' {
				f.state = expectObjComma
			} else {
				f.state = expectArrComma
			}
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
				if f := top(); f != nil && f.state == expectKey {
					f.state = expectColon
				} else {
					endValue()
				}
			}
			continue
		}

		if inLiteral {
			if isDelimiter(c) {
				inLiteral = false
				endValue()
				// reprocess delimiter
				i--
			}
			continue
		}

		switch c {
		case ' ', '\t', '\n', '\r':
		case '"':
			inString = true
			tokenStart = i
		case '{', '[':
			push(c, i)
		case '}', ']':
			if len(stack) == 0 {
				return "", ErrIncomplete
			}
			stack = stack[:len(stack)-1]
			endValue()
		case ':':
			if f := top(); f != nil && f.state == expectColon {
				f.state = expectValue
			}
		case ',':
			if f := top(); f != nil {
				if f.open == '{' {
					f.state = expectKey
				} else {
					f.state = expectArrValue
				}
				f.memberStart = i
			}
		default:
			inLiteral = true
			tokenStart = i
		}

		// Top-level document fully closed: ignore any trailing garbage.
		if len(stack) == 0 && c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return s[:i+1], nil
		}
	}

	if len(stack) == 0 {
		return "", ErrIncomplete
	}

	// The input ended inside an open document. Decide where the last fully
	// valid boundary is, then append closers.
	f := top()
	cut := len(s)

	switch {
	case inString && f.state == expectKey:
		// partial key: drop it together with the comma before it
		cut = f.memberStart
	case inString:
		// partial string value: close the quote and keep what streamed in
		s = s + "\""
		cut = len(s)
	case inLiteral:
		lit := s[tokenStart:]
		if isCompleteLiteralPrefix(lit) {
			// a truncated number is still a valid number
			cut = len(s)
		} else {
			cut = f.memberStart
		}
	case f.state == expectColon, f.state == expectValue:
		// key with no value yet: drop the dangling member
		cut = f.memberStart
	}

	doc := strings.TrimRight(s[:cut], " \t\n\r,")
	if doc == "" {
		return "", ErrIncomplete
	}

	closers, ok := closersFor(doc)
	if !ok {
		return "", ErrIncomplete
	}
	return doc + closers, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ',', '}', ']', ':', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// isCompleteLiteralPrefix reports whether a truncated literal is already a
// valid JSON value on its own (numbers are, cut keywords are not).
func isCompleteLiteralPrefix(lit string) bool {
	switch lit {
	case "true", "false", "null":
		return true
	}
	var num json.Number
	return json.Unmarshal([]byte(lit), &num) == nil
}

// closersFor re-scans a repaired prefix and returns the closing brackets
// needed to terminate it.
func closersFor(s string) (string, bool) {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
		}
	}
	if inString {
		return "", false
	}
	var b strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String(), true
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
	}
	// A trailing fence only exists once the stream is near done; drop it if
	// present, otherwise leave the tail for the completer to repair.
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return s
}
