package style

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		want    string
		wantErr bool
	}{
		{
			name:  "basic red",
			color: "red",
			want:  "\x1b[31m",
		},
		{
			name:  "light variant",
			color: "light_green",
			want:  "\x1b[92m",
		},
		{
			name:  "dark variant",
			color: "dark_blue",
			want:  "\x1b[34;2m",
		},
		{
			name:  "orange uses 256-color escape",
			color: "orange",
			want:  "\x1b[38;5;208m",
		},
		{
			name:  "pink uses 256-color escape",
			color: "pink",
			want:  "\x1b[38;5;205m",
		},
		{
			name:  "reset is addressable",
			color: "reset",
			want:  Reset,
		},
		{
			name:    "unknown",
			color:   "chartreuse",
			wantErr: true,
		},
		{
			name:    "empty",
			color:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Color(tt.color)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Color(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrUnknownColor) {
					t.Errorf("Color(%q) error = %v, want ErrUnknownColor", tt.color, err)
				}

				return
			}

			if got != tt.want {
				t.Errorf("Color(%q) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestStyle(t *testing.T) {
	tests := []struct {
		name    string
		style   string
		want    string
		wantErr bool
	}{
		{
			name:  "bold",
			style: "bold",
			want:  "\x1b[1m",
		},
		{
			name:  "blink",
			style: "blink",
			want:  "\x1b[5m",
		},
		{
			name:  "default is empty",
			style: "default",
			want:  "",
		},
		{
			name:    "unknown",
			style:   "sparkle",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Style(tt.style)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Style(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStyle) {
					t.Errorf("Style(%q) error = %v, want ErrUnknownStyle", tt.style, err)
				}

				return
			}

			if got != tt.want {
				t.Errorf("Style(%q) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		styles  []string
		want    string
		wantErr bool
	}{
		{
			name:   "empty",
			styles: nil,
			want:   "",
		},
		{
			name:   "single",
			styles: []string{"bold"},
			want:   "\x1b[1m",
		},
		{
			name:   "ordered",
			styles: []string{"bold", "blink"},
			want:   "\x1b[1m\x1b[5m",
		},
		{
			name:   "order preserved",
			styles: []string{"blink", "bold"},
			want:   "\x1b[5m\x1b[1m",
		},
		{
			name:    "unknown fails whole composition",
			styles:  []string{"bold", "sparkle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.styles...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compose(%v) error = %v, wantErr %v", tt.styles, err, tt.wantErr)
			}

			if !tt.wantErr && got != tt.want {
				t.Errorf("Compose(%v) = %q, want %q", tt.styles, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
		{
			name:  "single",
			input: "bold",
			want:  []string{"bold"},
		},
		{
			name:  "comma separated",
			input: "bold,blink",
			want:  []string{"bold", "blink"},
		},
		{
			name:  "whitespace trimmed",
			input: " bold , blink ",
			want:  []string{"bold", "blink"},
		},
		{
			name:  "empty entries dropped",
			input: "bold,,blink,",
			want:  []string{"bold", "blink"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColors(t *testing.T) {
	var names []string
	for name := range Colors() {
		names = append(names, name)
	}

	if len(names) != 25 {
		t.Errorf("Expected 25 color names, got %d", len(names))
	}

	if !slices.IsSorted(names) {
		t.Error("Expected color names in sorted order")
	}

	for _, required := range []string{"red", "green", "yellow", "blue", "reset"} {
		if !slices.Contains(names, required) {
			t.Errorf("Expected colors to contain %q", required)
		}
	}
}

func TestStyles(t *testing.T) {
	var names []string
	for name := range Styles() {
		names = append(names, name)
	}

	if len(names) != 7 {
		t.Errorf("Expected 7 style names, got %d", len(names))
	}

	if !slices.IsSorted(names) {
		t.Error("Expected style names in sorted order")
	}

	for _, required := range []string{"bold", "italic", "blink", "default"} {
		if !slices.Contains(names, required) {
			t.Errorf("Expected styles to contain %q", required)
		}
	}
}

func TestEveryColorTerminatesWithReset(t *testing.T) {
	// Escape sequences must be usable as prefix + text + Reset.
	for name := range Colors() {
		code, err := Color(name)
		if err != nil {
			t.Fatalf("Color(%q) unexpected error: %v", name, err)
		}

		if code != "" && !strings.HasPrefix(code, "\x1b[") {
			t.Errorf("Color(%q) = %q is not an escape sequence", name, code)
		}
	}
}
