package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
		{"multiple codes", "\x1b[1m\x1b[31mred bold\x1b[0m", "red bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"unicode", "こんにちは", 5},
		{"mixed ANSI and unicode", "\x1b[1mこんにちは\x1b[0m", 5},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"unicode text", "こんにちは", 4, "こ...", true},
		{"unicode no truncation", "こんにちは", 10, "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		text     string
		maxWidth int
		prefix   string
		want     string
	}{
		{"no truncation", "Dev", 10, "> ", "> Dev"},
		{"with truncation", "Development", 10, "> ", "> Devel..."},
		{"just fits", "Dev", 5, "> ", "> Dev"},
		{"no prefix", "Development", 8, "", "Devel..."},
		{"empty text", "", 10, "> ", "> "},
		{"prefix fills width", "Dev", 2, "> ", ".."},
		{"zero width", "Dev", 0, "> ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWithPrefix(tt.text, tt.maxWidth, tt.prefix, cfg)
			if got != tt.want {
				t.Errorf("TruncateWithPrefix(%q, %d, %q) = %q, want %q",
					tt.text, tt.maxWidth, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestTruncateFolderPath(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"fits", "menu > Dev", 20, "menu > Dev"},
		{"drops leading segment", "menu > Dev > Go", 14, "... > Dev > Go"},
		{"drops two segments", "menu > Dev > Go", 12, "... > Go"},
		{"innermost truncated", "menu > Development", 8, "Devel..."},
		{"single segment", "Development", 8, "Devel..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateFolderPath(tt.path, tt.maxWidth, " > ", cfg)
			if got != tt.want {
				t.Errorf("TruncateFolderPath(%q, %d) = %q, want %q", tt.path, tt.maxWidth, got, tt.want)
			}
		})
	}
}
