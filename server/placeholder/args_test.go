package placeholder

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseArgs(t *testing.T) {
	cases := []struct {
		line string
		want Args
	}{
		{"", nil},
		{"   ", nil},
		{"sharpness", Args{"sharpness"}},
		{"ShArPnEsS", Args{"ShArPnEsS"}},
		{"42", Args{42}},
		{"-3", Args{-3}},
		{"1.5", Args{1.5}},
		{"true false", Args{true, false}},
		{`"42"`, Args{"42"}},
		{`""`, Args{""}},
		{`"fire aspect" 2`, Args{"fire aspect", 2}},
		{`a "b \"c\"" d`, Args{"a", `b "c"`, "d"}},
		{"  spaced\targs  ", Args{"spaced", "args"}},
		{"nan inf", Args{"nan", "inf"}},
	}

	for _, c := range cases {
		got, err := ParseArgs(c.line)
		if err != nil {
			t.Fatalf("ParseArgs(%q): %v", c.line, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("ParseArgs(%q) = %#v, want %#v", c.line, got, c.want)
		}
	}
}

func TestParseArgsUnterminatedQuote(t *testing.T) {
	for _, line := range []string{`"open`, `a "b`, `"escaped\"`} {
		if _, err := ParseArgs(line); !errors.Is(err, errUnterminatedQuote) {
			t.Fatalf("ParseArgs(%q): expected unterminated quote error, got %v", line, err)
		}
	}
}

func TestArgsString(t *testing.T) {
	args := Args{"a", 1}
	if s, ok := args.String(0); !ok || s != "a" {
		t.Fatalf("expected string at index 0")
	}
	if _, ok := args.String(1); ok {
		t.Fatalf("expected int at index 1 not to be a string")
	}
	if _, ok := args.String(2); ok {
		t.Fatalf("expected out of range index to report false")
	}
	if _, ok := args.String(-1); ok {
		t.Fatalf("expected negative index to report false")
	}
}
