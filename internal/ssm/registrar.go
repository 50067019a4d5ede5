package ssm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resources"
)

// Parameter is one SSM string parameter to be declared.
type Parameter struct {
	ConstructID string
	Name        string
	Value       string
}

// Parameters expands paths and values into the flat list of parameters, in
// declaration order. Map entries are emitted in sorted key order.
func Parameters(paths Paths, values Values) ([]Parameter, error) {
	if err := paths.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameter paths: %w", err)
	}

	b := &builder{}

	// Detail
	b.scalar("workflow-name", paths.WorkflowName, values.WorkflowName)
	b.scalar("workflow-version", paths.WorkflowVersion, string(values.WorkflowVersion))

	// Payload
	b.scalar("payload-version", paths.PayloadVersion, values.PayloadVersion)

	// Inputs
	addEntries(b, "inputs", paths.PrefixDefaultInputsByWorkflowVersion, values.InputsByWorkflowVersion, jsonValue)

	// Engine parameters
	b.scalar("icav2-project-id", paths.ICAv2ProjectID, values.ICAv2ProjectID)
	addEntries(b, "pipeline-id", paths.PrefixPipelineIDsByWorkflowVersion, values.PipelineIDsByWorkflowVersion, plainValue)
	b.scalar("logs-prefix", paths.LogsPrefix, values.LogsPrefix)
	b.scalar("output-prefix", paths.OutputPrefix, values.OutputPrefix)

	// References
	addEntries(b, "reference", paths.ReferenceRootPrefix, values.ReferenceByWorkflowVersion, jsonValue)
	addEntries(b, "annotation-version-by-workflow-version", paths.AnnotationVersionByWorkflowRootPrefix, values.AnnotationVersionByWorkflowVersion, jsonValue)
	addEntries(b, "annotation-reference-path-by-annotation-version", paths.AnnotationReferenceByAnnotationVersion, values.AnnotationReferenceByAnnotationVersion, jsonValue)
	addEntries(b, "ora-version", paths.OraCompressionRootPrefix, values.OraReferenceByOraVersion, plainValue)

	if b.err != nil {
		return nil, b.err
	}
	return b.params, nil
}

// BuildParameters declares every parameter in stack. Declaring the same set
// twice is a no-op; declaring a different value under an existing construct
// ID fails.
func BuildParameters(ctx context.Context, stack *construct.Stack, paths Paths, values Values) error {
	params, err := Parameters(paths, values)
	if err != nil {
		return err
	}
	for _, p := range params {
		if _, err := stack.Add(ctx, p.ConstructID, resources.StringParameter{Name: p.Name, Value: p.Value}); err != nil {
			return fmt.Errorf("failed to declare parameter %s: %w", p.Name, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("SSM parameters declared.", "stack", stack.ID(), "count", len(params))
	return nil
}

type builder struct {
	params []Parameter
	err    error
}

func (b *builder) scalar(id string, path *parampath.Path, value string) {
	if b.err != nil {
		return
	}
	b.params = append(b.params, Parameter{ConstructID: id, Name: path.String(), Value: value})
}

// addEntries declares one parameter per map entry under prefix, with the
// construct ID `<idPrefix>-<key>`.
func addEntries[K ~string, V any](b *builder, idPrefix string, prefix *parampath.Path, m map[K]V, encode func(any) (string, error)) {
	if b.err != nil {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		path, err := prefix.Join(string(key))
		if err != nil {
			b.err = fmt.Errorf("%s entry %q: %w", idPrefix, key, err)
			return
		}
		value, err := encode(m[key])
		if err != nil {
			b.err = fmt.Errorf("%s entry %q: %w", idPrefix, key, err)
			return
		}
		b.params = append(b.params, Parameter{
			ConstructID: idPrefix + "-" + string(key),
			Name:        path.String(),
			Value:       value,
		})
	}
}

func plainValue(v any) (string, error) {
	return fmt.Sprint(v), nil
}

// jsonValue encodes v as compact JSON without HTML escaping, so values read
// back by consumers compare equal to the literal tables.
func jsonValue(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
