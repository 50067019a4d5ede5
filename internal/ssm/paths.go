package ssm

import (
	"errors"
	"fmt"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
)

// Paths is the full set of parameter paths. Scalar paths name a single
// parameter; prefixes are roots under which one parameter per version key is
// stored.
type Paths struct {
	RootPrefix *parampath.Path

	// Detail
	WorkflowName    *parampath.Path
	WorkflowVersion *parampath.Path

	// Payload
	PayloadVersion *parampath.Path

	// Inputs
	PrefixDefaultInputsByWorkflowVersion *parampath.Path

	// Engine parameters
	PrefixPipelineIDsByWorkflowVersion *parampath.Path
	ICAv2ProjectID                     *parampath.Path
	LogsPrefix                         *parampath.Path
	OutputPrefix                       *parampath.Path

	// References
	ReferenceRootPrefix                    *parampath.Path
	OraCompressionRootPrefix               *parampath.Path
	AnnotationVersionByWorkflowRootPrefix  *parampath.Path
	AnnotationReferenceByAnnotationVersion *parampath.Path
}

type namedPath struct {
	name string
	path *parampath.Path
}

func (p Paths) scalars() []namedPath {
	return []namedPath{
		{"workflow name", p.WorkflowName},
		{"workflow version", p.WorkflowVersion},
		{"payload version", p.PayloadVersion},
		{"icav2 project id", p.ICAv2ProjectID},
		{"logs prefix", p.LogsPrefix},
		{"output prefix", p.OutputPrefix},
	}
}

func (p Paths) prefixes() []namedPath {
	return []namedPath{
		{"default inputs prefix", p.PrefixDefaultInputsByWorkflowVersion},
		{"pipeline ids prefix", p.PrefixPipelineIDsByWorkflowVersion},
		{"reference prefix", p.ReferenceRootPrefix},
		{"ora reference prefix", p.OraCompressionRootPrefix},
		{"annotation version prefix", p.AnnotationVersionByWorkflowRootPrefix},
		{"annotation reference prefix", p.AnnotationReferenceByAnnotationVersion},
	}
}

// Validate checks that every path lies strictly under the root prefix, that
// no two paths coincide and that no scalar parameter is the ancestor of
// another path.
func (p Paths) Validate() error {
	if p.RootPrefix == nil {
		return errors.New("root prefix is not set")
	}

	all := append(p.scalars(), p.prefixes()...)
	var errs []error
	for _, np := range all {
		if np.path == nil {
			errs = append(errs, fmt.Errorf("%s is not set", np.name))
			continue
		}
		if !p.RootPrefix.IsAncestorOf(np.path) {
			errs = append(errs, fmt.Errorf("%s %s is not under %s", np.name, np.path, p.RootPrefix))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for i, a := range all {
		for _, b := range all[i+1:] {
			if a.path.Equal(b.path) {
				errs = append(errs, fmt.Errorf("%s and %s share the path %s", a.name, b.name, a.path))
			}
		}
	}
	for _, s := range p.scalars() {
		for _, other := range all {
			if s.path.IsAncestorOf(other.path) {
				errs = append(errs, fmt.Errorf("%s %s is an ancestor of %s", s.name, s.path, other.name))
			}
		}
	}
	return errors.Join(errs...)
}

// List returns every path in a fixed order, for display.
func (p Paths) List() []*parampath.Path {
	var out []*parampath.Path
	for _, np := range append(p.scalars(), p.prefixes()...) {
		out = append(out, np.path)
	}
	return out
}
