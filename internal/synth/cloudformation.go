package synth

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Jeffail/gabs"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
)

const templateFormatVersion = "2010-09-09"

// cloudFormationTemplate assembles the template of a stack as a generic
// document tree.
func cloudFormationTemplate(ctx context.Context, stack *construct.Stack) (*gabs.Container, error) {
	entries, err := stack.Resources(ctx)
	if err != nil {
		return nil, err
	}

	template := gabs.New()
	if _, err := template.Set(templateFormatVersion, "AWSTemplateFormatVersion"); err != nil {
		return nil, err
	}
	if stack.Description() != "" {
		if _, err := template.Set(stack.Description(), "Description"); err != nil {
			return nil, err
		}
	}
	if _, err := template.Object("Resources"); err != nil {
		return nil, err
	}

	for _, e := range entries {
		cfnType := e.Resource.CloudFormationType()
		if cfnType == "" {
			continue
		}
		handle, ok := stack.Handle(e.ID)
		if !ok {
			return nil, fmt.Errorf("construct %q has no handle", e.ID)
		}

		props := e.Resource.CloudFormationProperties()
		raw, err := ctyjson.Marshal(props, props.Type())
		if err != nil {
			return nil, fmt.Errorf("construct %q: %w", e.ID, err)
		}
		parsed, err := gabs.ParseJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("construct %q: %w", e.ID, err)
		}

		if _, err := template.Set(cfnType, "Resources", handle.LogicalID, "Type"); err != nil {
			return nil, err
		}
		if _, err := template.Set(parsed.Data(), "Resources", handle.LogicalID, "Properties"); err != nil {
			return nil, err
		}
		if _, err := template.Set(e.ID, "Resources", handle.LogicalID, "Metadata", "ConstructId"); err != nil {
			return nil, err
		}
	}
	return template, nil
}

func renderCloudFormationJSON(ctx context.Context, stack *construct.Stack) ([]byte, error) {
	template, err := cloudFormationTemplate(ctx, stack)
	if err != nil {
		return nil, err
	}
	return append(template.BytesIndent("", "  "), '\n'), nil
}

func renderCloudFormationYAML(ctx context.Context, stack *construct.Stack) ([]byte, error) {
	template, err := cloudFormationTemplate(ctx, stack)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(template.Data()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
