package parampath

// Path is the structured representation of a parameter-store name.
type Path struct {
	Segments []string
	// Dir marks a prefix path. It only affects rendering: a Dir path is
	// printed with a trailing slash.
	Dir bool
}

// Len returns the number of segments in the path.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Segments)
}

// Leaf returns the last segment of the path, or "" for an empty path.
func (p *Path) Leaf() string {
	if p.Len() == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}
