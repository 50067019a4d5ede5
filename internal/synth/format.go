package synth

import (
	"fmt"
	"strings"
)

// Format is an output template format.
type Format string

const (
	CloudFormationJSON Format = "cloudformation-json"
	CloudFormationYAML Format = "cloudformation-yaml"
	Terraform          Format = "terraform"
)

// Formats lists the supported formats.
var Formats = []Format{CloudFormationJSON, CloudFormationYAML, Terraform}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(text string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(text)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected one of %v)", text, Formats)
}

// artifactPath is the path of a stack's template relative to the output
// directory. Terraform stacks get a directory each since every stack is its
// own root module.
func (f Format) artifactPath(stackID string) string {
	switch f {
	case CloudFormationYAML:
		return stackID + ".template.yaml"
	case Terraform:
		return stackID + "/main.tf"
	default:
		return stackID + ".template.json"
	}
}
