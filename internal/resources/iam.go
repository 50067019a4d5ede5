package resources

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
)

const policyVersion = "2012-10-17"

// PolicyStatement is one Allow/Deny statement of an IAM policy.
type PolicyStatement struct {
	Effect    string
	Actions   []string
	Resources []string
}

// Allow is shorthand for an Allow statement.
func Allow(actions []string, resources ...string) PolicyStatement {
	return PolicyStatement{Effect: "Allow", Actions: actions, Resources: resources}
}

var statementType = cty.Object(map[string]cty.Type{
	"Effect":   cty.String,
	"Action":   cty.List(cty.String),
	"Resource": cty.List(cty.String),
})

// PolicyDocument renders statements as an IAM policy document.
func PolicyDocument(statements []PolicyStatement) cty.Value {
	list := cty.ListValEmpty(statementType)
	if len(statements) > 0 {
		vals := make([]cty.Value, 0, len(statements))
		for _, st := range statements {
			vals = append(vals, cty.ObjectVal(map[string]cty.Value{
				"Effect":   cty.StringVal(st.Effect),
				"Action":   stringList(st.Actions),
				"Resource": stringList(st.Resources),
			}))
		}
		list = cty.ListVal(vals)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"Version":   cty.StringVal(policyVersion),
		"Statement": list,
	})
}

func assumeRolePolicy(service string) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"Version": cty.StringVal(policyVersion),
		"Statement": cty.ListVal([]cty.Value{cty.ObjectVal(map[string]cty.Value{
			"Effect":    cty.StringVal("Allow"),
			"Principal": cty.ObjectVal(map[string]cty.Value{"Service": cty.StringVal(service)}),
			"Action":    cty.StringVal("sts:AssumeRole"),
		})}),
	})
}

// Role is an IAM role assumable by an AWS service principal.
type Role struct {
	RoleName          string
	Description       string
	ServicePrincipal  string
	ManagedPolicyARNs []string
}

func (r Role) CloudFormationType() string { return "AWS::IAM::Role" }

func (r Role) CloudFormationProperties() cty.Value {
	managed := cty.NullVal(cty.List(cty.String))
	if len(r.ManagedPolicyARNs) > 0 {
		managed = stringList(r.ManagedPolicyARNs)
	}
	return object(map[string]cty.Value{
		"RoleName":                 optionalString(r.RoleName),
		"Description":              optionalString(r.Description),
		"AssumeRolePolicyDocument": assumeRolePolicy(r.ServicePrincipal),
		"ManagedPolicyArns":        managed,
	})
}

func (r Role) TerraformType() string { return "aws_iam_role" }

func (r Role) TerraformAttributes() cty.Value {
	managed := cty.NullVal(cty.List(cty.String))
	if len(r.ManagedPolicyARNs) > 0 {
		managed = stringList(r.ManagedPolicyARNs)
	}
	return object(map[string]cty.Value{
		"name":                optionalString(r.RoleName),
		"description":         optionalString(r.Description),
		"assume_role_policy":  jsonString(assumeRolePolicy(r.ServicePrincipal)),
		"managed_policy_arns": managed,
	})
}

// RolePolicy is an inline policy attached to a role declared in the same
// stack.
type RolePolicy struct {
	PolicyName string
	Role       *construct.Handle
	Statements []PolicyStatement
}

func (p RolePolicy) CloudFormationType() string { return "AWS::IAM::RolePolicy" }

func (p RolePolicy) CloudFormationProperties() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"PolicyName":     cty.StringVal(p.PolicyName),
		"RoleName":       p.Role.Ref(),
		"PolicyDocument": PolicyDocument(p.Statements),
	})
}

func (p RolePolicy) TerraformType() string { return "aws_iam_role_policy" }

func (p RolePolicy) TerraformAttributes() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name":   cty.StringVal(p.PolicyName),
		"role":   p.Role.TerraformRef("id"),
		"policy": jsonString(PolicyDocument(p.Statements)),
	})
}
