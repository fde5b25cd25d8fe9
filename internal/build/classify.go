package build

import "strings"

// Classification of a failed build from its captured stderr.
type Classification int

const (
	// Fatal failures are surfaced to the caller as-is.
	Fatal Classification = iota
	// Recoverable failures (minification/shrinking stage) trigger the
	// one-hop release→debug fallback.
	Recoverable
)

// Classify inspects build stderr for any of the configured recoverable
// markers. Matching is a case-insensitive substring check; the marker set is
// configuration, not an assumption about a particular build system.
func Classify(stderr string, markers []string) Classification {
	lower := strings.ToLower(stderr)
	for _, m := range markers {
		if m == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(m)) {
			return Recoverable
		}
	}
	return Fatal
}
