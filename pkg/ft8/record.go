package ft8

import (
	"strings"

	"github.com/aretw0/qso/pkg/domain"
)

// Extract returns the normalized message of a decoder record line.
// It reports false for lines without the separator and for empty messages.
func Extract(line string) (string, bool) {
	return ExtractWith(domain.DefaultRecordSeparator)(line)
}

// ExtractWith returns an extractor for records using sep as the metadata separator.
// An empty sep treats the whole line as the message.
func ExtractWith(sep string) func(string) (string, bool) {
	return func(line string) (string, bool) {
		msg := line
		if sep != "" {
			var found bool
			_, msg, found = strings.Cut(line, sep)
			if !found {
				return "", false
			}
		}
		msg = Normalize(msg)
		return msg, msg != ""
	}
}

// Normalize trims and upper-cases a message.
func Normalize(msg string) string {
	return strings.ToUpper(strings.TrimSpace(msg))
}

// Messages extracts the messages of the given record lines, skipping malformed ones.
func Messages(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if msg, ok := Extract(line); ok {
			out = append(out, msg)
		}
	}
	return out
}
