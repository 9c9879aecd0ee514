package placeholder

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Args holds the positional arguments of a placeholder invocation. Values are
// loosely typed as they usually originate from user written text.
type Args []any

// String returns the argument at index i if it is present and a string.
func (a Args) String(i int) (string, bool) {
	if i < 0 || i >= len(a) {
		return "", false
	}
	s, ok := a[i].(string)
	return s, ok
}

var errUnterminatedQuote = errors.New("unterminated quoted argument")

// ParseArgs splits line into Args. Arguments are separated by whitespace.
// Double-quoted arguments are always strings and may contain whitespace and the
// escapes \" and \\. Unquoted arguments are converted to int, float64 or bool
// when they parse as one, and kept as string otherwise.
func ParseArgs(line string) (Args, error) {
	var (
		args    Args
		current strings.Builder
		quoted  bool
		inQuote bool
		escaped bool
		started bool
	)
	flush := func() {
		if !started {
			return
		}
		if quoted {
			args = append(args, current.String())
		} else {
			args = append(args, literal(current.String()))
		}
		current.Reset()
		quoted, started = false, false
	}

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
			quoted, started = true, true
		case !inQuote && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuote || escaped {
		return nil, errUnterminatedQuote
	}
	flush()
	return args, nil
}

// literal converts an unquoted argument to the most specific type it parses as.
func literal(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, ".eE") {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
