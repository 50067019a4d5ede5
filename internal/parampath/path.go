package parampath

import (
	"slices"
	"strings"
)

// String serializes the Path into its canonical form.
func (p *Path) String() string {
	if p.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, segment := range p.Segments {
		sb.WriteRune('/')
		sb.WriteString(segment)
	}
	if p.Dir {
		sb.WriteRune('/')
	}
	return sb.String()
}

// Join appends leaf segments to the path. A leaf may itself contain slashes,
// in which case each part becomes a segment. The result is a leaf path unless
// the last element ends with a slash.
func (p *Path) Join(leaf ...string) (*Path, error) {
	joined := &Path{Segments: slices.Clone(p.Segments), Dir: p.Dir}
	for _, element := range leaf {
		trimmed := strings.Trim(element, "/")
		joined.Dir = strings.HasSuffix(element, "/")
		if trimmed == "" {
			continue
		}
		for _, segment := range strings.Split(trimmed, "/") {
			if err := validateSegment(segment); err != nil {
				return nil, err
			}
			joined.Segments = append(joined.Segments, segment)
		}
	}
	return joined, nil
}

// MustJoin is like Join but panics on error.
func (p *Path) MustJoin(leaf ...string) *Path {
	joined, err := p.Join(leaf...)
	if err != nil {
		panic(err)
	}
	return joined
}

// Equal compares the segments of two paths. The Dir flag is ignored: a prefix
// and a parameter with the same segments name the same node of the hierarchy.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return slices.Equal(p.Segments, other.Segments)
}

// HasPrefix reports whether prefix is an ancestor of, or equal to, p.
func (p *Path) HasPrefix(prefix *Path) bool {
	if p == nil || prefix == nil || prefix.Len() > p.Len() {
		return false
	}
	return slices.Equal(p.Segments[:prefix.Len()], prefix.Segments)
}

// IsAncestorOf reports whether p is a strict ancestor of other.
func (p *Path) IsAncestorOf(other *Path) bool {
	return other.HasPrefix(p) && other.Len() > p.Len()
}
