package synth

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resourcestore"
)

const awsProviderSource = "hashicorp/aws"

func renderTerraform(ctx context.Context, stack *construct.Stack) ([]byte, error) {
	entries, err := stack.Resources(ctx)
	if err != nil {
		return nil, err
	}

	file := hclwrite.NewEmptyFile()
	root := file.Body()
	writeProvider(root, stack)

	for _, e := range entries {
		tfType := e.Resource.TerraformType()
		if tfType == "" {
			continue
		}
		handle, ok := stack.Handle(e.ID)
		if !ok {
			return nil, fmt.Errorf("construct %q has no handle", e.ID)
		}

		root.AppendNewline()
		block := root.AppendNewBlock("resource", []string{tfType, handle.TerraformName})
		var nested []string
		if b, ok := e.Resource.(resourcestore.TerraformBlocker); ok {
			nested = b.TerraformBlockAttributes()
		}
		if err := writeBody(block.Body(), e.Resource.TerraformAttributes(), nested); err != nil {
			return nil, fmt.Errorf("construct %q: %w", e.ID, err)
		}
	}
	return hclwrite.Format(file.Bytes()), nil
}

func writeProvider(body *hclwrite.Body, stack *construct.Stack) {
	tf := body.AppendNewBlock("terraform", nil).Body()
	providers := tf.AppendNewBlock("required_providers", nil).Body()
	providers.SetAttributeValue("aws", cty.ObjectVal(map[string]cty.Value{
		"source": cty.StringVal(awsProviderSource),
	}))

	body.AppendNewline()
	provider := body.AppendNewBlock("provider", []string{"aws"}).Body()
	if env := stack.Env(); env.Region != "" {
		provider.SetAttributeValue("region", cty.StringVal(env.Region))
		if env.Account != "" {
			provider.SetAttributeValue("allowed_account_ids", cty.ListVal([]cty.Value{cty.StringVal(env.Account)}))
		}
	}

	tags := stack.Tags()
	if len(tags) == 0 {
		return
	}
	vals := make(map[string]cty.Value, len(tags))
	for _, k := range tags {
		vals[k] = cty.StringVal(stack.Tag(k))
	}
	defaults := provider.AppendNewBlock("default_tags", nil).Body()
	defaults.SetAttributeValue("tags", cty.MapVal(vals))
}

// writeBody writes the attributes of obj in name order. Attributes listed in
// nested become blocks, and string values produced by Handle.TerraformRef
// become traversals.
func writeBody(body *hclwrite.Body, obj cty.Value, nested []string) error {
	if !obj.Type().IsObjectType() {
		return fmt.Errorf("expected an object, got %s", obj.Type().FriendlyName())
	}

	names := make([]string, 0, len(obj.Type().AttributeTypes()))
	for name := range obj.Type().AttributeTypes() {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		v := obj.GetAttr(name)
		if v.IsNull() {
			continue
		}

		if slices.Contains(nested, name) {
			if err := writeNestedBlocks(body, name, v); err != nil {
				return err
			}
			continue
		}

		if ref, ok := construct.ParseTerraformRef(v); ok {
			traversal, diags := hclsyntax.ParseTraversalAbs([]byte(ref), "", hcl.Pos{Line: 1, Column: 1})
			if diags.HasErrors() {
				return fmt.Errorf("attribute %s: %s", name, diags.Error())
			}
			body.SetAttributeTraversal(name, traversal)
			continue
		}
		body.SetAttributeValue(name, v)
	}
	return nil
}

func writeNestedBlocks(body *hclwrite.Body, name string, v cty.Value) error {
	ty := v.Type()
	switch {
	case ty.IsObjectType():
		return writeBody(body.AppendNewBlock(name, nil).Body(), v, nil)
	case ty.IsListType() || ty.IsTupleType():
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if err := writeBody(body.AppendNewBlock(name, nil).Body(), elem, nil); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("attribute %s: cannot render %s as a block", name, ty.FriendlyName())
	}
}
