package pkg

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "linelog"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestDescription(t *testing.T) {
	expected := "Template-driven log line formatter"
	if Description != expected {
		t.Errorf("Expected Description to be %q, got %q", expected, Description)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from the VERSION file, so it should match it.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); strings.TrimSpace(Version) != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Error("Expected Author to have at least one entry")
	}

	expectedName := "ardnew"
	expectedEmail := "andrew@ardnew.com"

	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == expectedName && a.Email == expectedEmail
	}) {
		t.Errorf("Expected Author to contain %q, %q", expectedName, expectedEmail)
	}
}

func TestAuthorStruct(t *testing.T) {
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestMakeError(t *testing.T) {
	tests := []struct {
		name string
		errs []error
		want string
	}{
		{
			name: "empty",
			errs: nil,
			want: "",
		},
		{
			name: "single",
			errs: []error{errors.New("inner")},
			want: "inner",
		},
		{
			name: "ordered chain",
			errs: []error{errors.New("inner"), errors.New("outer")},
			want: "inner: outer",
		},
		{
			name: "nil elided",
			errs: []error{nil, errors.New("only")},
			want: "only",
		},
		{
			name: "wrapped flattened",
			errs: []error{fmt.Errorf("outer: %w", errors.New("inner"))},
			want: "inner: outer: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeError(tt.errs...)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("MakeError() = %v, want nil", got)
				}

				return
			}

			if got.Error() != tt.want {
				t.Errorf("MakeError().Error() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}

func TestErrorWrap(t *testing.T) {
	base := MakeErrorf("base")
	wrapped := base.Wrap(errors.New("next")).Wrapf("last %d", 1)

	want := "base: next: last 1"
	if wrapped.Error() != want {
		t.Errorf("Expected %q, got %q", want, wrapped.Error())
	}

	// The original chain must be observable through errors.Is.
	if !errors.Is(wrapped, base[0]) {
		t.Error("Expected wrapped chain to contain base error")
	}
}

func TestErrorIsSentinel(t *testing.T) {
	err := ErrParse.Wrapf("line %d", 3)

	if !errors.Is(err, ErrParse[0]) {
		t.Error("Expected chain to match ErrParse sentinel")
	}

	if errors.Is(err, ErrReadStdin[0]) {
		t.Error("Did not expect chain to match ErrReadStdin sentinel")
	}
}

func TestUnwrapErrors(t *testing.T) {
	inner := errors.New("inner")
	mid := fmt.Errorf("mid: %w", inner)

	chain := UnwrapErrors(mid)
	if len(chain) != 2 {
		t.Fatalf("Expected 2 errors in chain, got %d", len(chain))
	}

	if chain[0] != inner {
		t.Errorf("Expected innermost error first, got %v", chain[0])
	}
}
