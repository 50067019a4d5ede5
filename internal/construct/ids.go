package construct

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)
	nonIdentifier   = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	terraformRef    = regexp.MustCompile(`^\$\{([A-Za-z0-9_.]+)\}$`)
)

// maxLogicalIDLength is the CloudFormation limit on logical IDs.
const maxLogicalIDLength = 255

// LogicalID derives the CloudFormation logical ID of a construct: the
// alphanumeric characters of its ID followed by the first 8 hex characters of
// a digest over the full construct path.
func LogicalID(stackID, constructID string) string {
	sum := sha256.Sum256([]byte(stackID + "/" + constructID))
	suffix := strings.ToUpper(hex.EncodeToString(sum[:])[:8])

	base := nonAlphanumeric.ReplaceAllString(constructID, "")
	if max := maxLogicalIDLength - len(suffix); len(base) > max {
		base = base[:max]
	}
	return base + suffix
}

// TerraformName derives the Terraform resource name of a construct.
func TerraformName(constructID string) (string, error) {
	name := strings.Trim(nonIdentifier.ReplaceAllString(constructID, "_"), "_")
	if name == "" {
		return "", fmt.Errorf("construct ID %q has no identifier characters", constructID)
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "r_" + name
	}
	if !hclsyntax.ValidIdentifier(name) {
		return "", fmt.Errorf("construct ID %q does not map to a valid Terraform identifier (got %q)", constructID, name)
	}
	return name, nil
}

// Handle identifies a registered resource so other resources can reference it.
type Handle struct {
	ConstructID   string
	LogicalID     string
	TerraformType string
	TerraformName string
}

// Ref is the CloudFormation `Ref` of the resource.
func (h *Handle) Ref() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"Ref": cty.StringVal(h.LogicalID),
	})
}

// GetAtt is the CloudFormation `Fn::GetAtt` of an attribute of the resource.
func (h *Handle) GetAtt(attr string) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"Fn::GetAtt": cty.TupleVal([]cty.Value{cty.StringVal(h.LogicalID), cty.StringVal(attr)}),
	})
}

// TerraformRef is a reference to an attribute of the resource, encoded as a
// `${type.name.attr}` string that the Terraform renderer turns back into a
// traversal.
func (h *Handle) TerraformRef(attr string) cty.Value {
	return cty.StringVal(fmt.Sprintf("${%s.%s.%s}", h.TerraformType, h.TerraformName, attr))
}

// ParseTerraformRef reports whether v is a value produced by TerraformRef and
// returns the traversal text it wraps.
func ParseTerraformRef(v cty.Value) (string, bool) {
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
		return "", false
	}
	m := terraformRef.FindStringSubmatch(v.AsString())
	if m == nil {
		return "", false
	}
	return m[1], true
}
