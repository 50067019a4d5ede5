package resources

import "github.com/zclconf/go-cty/cty"

// StringParameter is a plain-text SSM parameter.
type StringParameter struct {
	Name        string
	Value       string
	Description string
}

func (p StringParameter) CloudFormationType() string { return "AWS::SSM::Parameter" }

func (p StringParameter) CloudFormationProperties() cty.Value {
	return object(map[string]cty.Value{
		"Type":        cty.StringVal("String"),
		"Name":        cty.StringVal(p.Name),
		"Value":       cty.StringVal(p.Value),
		"Description": optionalString(p.Description),
	})
}

func (p StringParameter) TerraformType() string { return "aws_ssm_parameter" }

func (p StringParameter) TerraformAttributes() cty.Value {
	return object(map[string]cty.Value{
		"type":        cty.StringVal("String"),
		"name":        cty.StringVal(p.Name),
		"value":       cty.StringVal(p.Value),
		"description": optionalString(p.Description),
	})
}
