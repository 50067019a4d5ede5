package construct

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/dag"
)

// References builds the graph of construct IDs in which an edge a -> b means
// b references a. It fails on references to resources that were never added
// to the stack and on reference cycles.
func (s *Stack) References(ctx context.Context) (*dag.Graph, error) {
	entries, err := s.Resources(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	byLogicalID := make(map[string]string, len(s.handles))
	for id, h := range s.handles {
		byLogicalID[h.LogicalID] = id
	}
	byTerraformAddr := make(map[string]string, len(s.tfNames))
	for addr, id := range s.tfNames {
		byTerraformAddr[addr] = id
	}
	s.mu.Unlock()

	graph := dag.New()
	for _, e := range entries {
		graph.AddNode(e.ID)
	}
	for _, e := range entries {
		var targets []string
		if e.Resource.CloudFormationType() != "" {
			for _, logicalID := range cloudFormationRefs(e.Resource.CloudFormationProperties()) {
				target, ok := byLogicalID[logicalID]
				if !ok {
					return nil, fmt.Errorf("stack %s: %s references undeclared logical ID %s", s.id, e.ID, logicalID)
				}
				targets = append(targets, target)
			}
		}
		if e.Resource.TerraformType() != "" {
			for _, addr := range terraformRefs(e.Resource.TerraformAttributes()) {
				target, ok := byTerraformAddr[addr]
				if !ok {
					return nil, fmt.Errorf("stack %s: %s references undeclared Terraform resource %s", s.id, e.ID, addr)
				}
				targets = append(targets, target)
			}
		}
		for _, target := range targets {
			if err := graph.AddEdge(target, e.ID); err != nil {
				return nil, fmt.Errorf("stack %s: %w", s.id, err)
			}
		}
	}
	if err := graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("stack %s: %w", s.id, err)
	}
	return graph, nil
}

var (
	refType    = cty.Object(map[string]cty.Type{"Ref": cty.String})
	getAttType = cty.Object(map[string]cty.Type{"Fn::GetAtt": cty.Tuple([]cty.Type{cty.String, cty.String})})
)

// cloudFormationRefs collects the logical IDs named by Ref and Fn::GetAtt
// objects inside v.
func cloudFormationRefs(v cty.Value) []string {
	var ids []string
	_ = cty.Walk(v, func(_ cty.Path, v cty.Value) (bool, error) {
		if v.IsNull() || !v.IsKnown() || !v.Type().IsObjectType() {
			return true, nil
		}
		if len(v.Type().AttributeTypes()) != 1 {
			return true, nil
		}
		switch {
		case v.Type().Equals(refType):
			ids = append(ids, v.GetAttr("Ref").AsString())
			return false, nil
		case v.Type().Equals(getAttType):
			ids = append(ids, v.GetAttr("Fn::GetAtt").Index(cty.NumberIntVal(0)).AsString())
			return false, nil
		}
		return true, nil
	})
	return ids
}

// terraformRefs collects the "<type>.<name>" addresses of every reference
// inside v.
func terraformRefs(v cty.Value) []string {
	var addrs []string
	_ = cty.Walk(v, func(_ cty.Path, v cty.Value) (bool, error) {
		text, ok := ParseTerraformRef(v)
		if !ok {
			return true, nil
		}
		if parts := strings.Split(text, "."); len(parts) >= 2 {
			addrs = append(addrs, parts[0]+"."+parts[1])
		}
		return false, nil
	})
	return addrs
}
