package parampath

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches the characters the parameter store accepts in a single
// path segment.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// isValidSegmentName rejects relative-path segments.
func isValidSegmentName(name string) bool {
	return name != "." && name != ".."
}

// Parse creates a new Path by parsing its canonical string representation.
func Parse(raw string) (*Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("parameter path cannot be empty")
	}
	if !strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("parameter path %q must be absolute", raw)
	}

	p := &Path{Dir: strings.HasSuffix(raw, "/")}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(raw, "/"), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("parameter path %q has no segments", raw)
	}
	for _, segment := range strings.Split(trimmed, "/") {
		if err := validateSegment(segment); err != nil {
			return nil, fmt.Errorf("parameter path %q: %w", raw, err)
		}
		p.Segments = append(p.Segments, segment)
	}
	return p, nil
}

// MustParse is like Parse but panics on error. It is meant for package-level
// path templates whose validity is a programming invariant.
func MustParse(raw string) *Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func validateSegment(segment string) error {
	if segment == "" {
		return fmt.Errorf("empty path segment")
	}
	if !segmentRegex.MatchString(segment) {
		return fmt.Errorf("invalid path segment format: %q", segment)
	}
	if !isValidSegmentName(segment) {
		return fmt.Errorf("invalid segment name: %q", segment)
	}
	return nil
}
