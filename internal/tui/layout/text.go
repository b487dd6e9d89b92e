package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	textLen := utf8.RuneCountInString(text)

	if textLen <= maxWidth {
		return text, false
	}

	if maxWidth <= ellipsisLen {
		runes := []rune(cfg.Ellipsis)
		return string(runes[:maxWidth]), true
	}

	runes := []rune(text)
	return string(runes[:maxWidth-ellipsisLen]) + cfg.Ellipsis, true
}

// TruncateWithPrefix truncates text while keeping prefix intact.
// Example: TruncateWithPrefix("Development", 10, "> ", cfg) -> "> Devel..."
func TruncateWithPrefix(text string, maxWidth int, prefix string, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}

	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen >= maxWidth {
		s, _ := TruncateText(prefix+text, maxWidth, cfg)
		return s
	}

	s, _ := TruncateText(text, maxWidth-prefixLen, cfg)
	return prefix + s
}

// TruncateFolderPath shortens a " > "-joined folder path by dropping leading
// segments, keeping the innermost folder readable.
// Example: TruncateFolderPath("menu > Dev > Go", 12, " > ", cfg) -> "... > Go"
func TruncateFolderPath(path string, maxWidth int, separator string, cfg TextConfig) string {
	if utf8.RuneCountInString(path) <= maxWidth {
		return path
	}

	segments := strings.Split(path, separator)
	for i := 1; i < len(segments); i++ {
		candidate := cfg.Ellipsis + separator + strings.Join(segments[i:], separator)
		if utf8.RuneCountInString(candidate) <= maxWidth {
			return candidate
		}
	}

	s, _ := TruncateText(segments[len(segments)-1], maxWidth, cfg)
	return s
}
