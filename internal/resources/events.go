package resources

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
)

// EventPattern is an EventBridge event pattern. Empty fields are left out of
// the pattern; Detail is an arbitrary object of filters and may be null.
type EventPattern struct {
	Sources     []string
	DetailTypes []string
	Detail      cty.Value
}

// Value renders the pattern as EventBridge expects it.
func (p EventPattern) Value() cty.Value {
	attrs := map[string]cty.Value{}
	if len(p.Sources) > 0 {
		attrs["source"] = stringList(p.Sources)
	}
	if len(p.DetailTypes) > 0 {
		attrs["detail-type"] = stringList(p.DetailTypes)
	}
	if !p.Detail.IsNull() {
		attrs["detail"] = p.Detail
	}
	return object(attrs)
}

// RuleTarget is a Lambda function invoked by a rule.
type RuleTarget struct {
	ID       string
	Function *construct.Handle
}

// EventRule is an EventBridge rule on a named event bus.
type EventRule struct {
	RuleName     string
	Description  string
	EventBusName string
	Pattern      EventPattern
	Targets      []RuleTarget
}

func (r EventRule) CloudFormationType() string { return "AWS::Events::Rule" }

func (r EventRule) CloudFormationProperties() cty.Value {
	targets := cty.NullVal(cty.List(cty.EmptyObject))
	if len(r.Targets) > 0 {
		vals := make([]cty.Value, 0, len(r.Targets))
		for _, t := range r.Targets {
			vals = append(vals, cty.ObjectVal(map[string]cty.Value{
				"Id":  cty.StringVal(t.ID),
				"Arn": t.Function.GetAtt("Arn"),
			}))
		}
		targets = cty.TupleVal(vals)
	}
	return object(map[string]cty.Value{
		"Name":         cty.StringVal(r.RuleName),
		"Description":  optionalString(r.Description),
		"EventBusName": cty.StringVal(r.EventBusName),
		"EventPattern": r.Pattern.Value(),
		"State":        cty.StringVal("ENABLED"),
		"Targets":      targets,
	})
}

func (r EventRule) TerraformType() string { return "aws_cloudwatch_event_rule" }

// TerraformAttributes omits the targets; Terraform declares them as
// separate EventTarget resources.
func (r EventRule) TerraformAttributes() cty.Value {
	return object(map[string]cty.Value{
		"name":           cty.StringVal(r.RuleName),
		"description":    optionalString(r.Description),
		"event_bus_name": cty.StringVal(r.EventBusName),
		"event_pattern":  jsonString(r.Pattern.Value()),
		"state":          cty.StringVal("ENABLED"),
	})
}

// EventTarget binds a function to a rule. CloudFormation embeds targets in
// the rule itself, so this resource only exists in Terraform output.
type EventTarget struct {
	Rule         *construct.Handle
	EventBusName string
	TargetID     string
	Function     *construct.Handle
}

func (t EventTarget) CloudFormationType() string { return "" }

func (t EventTarget) CloudFormationProperties() cty.Value { return cty.EmptyObjectVal }

func (t EventTarget) TerraformType() string { return "aws_cloudwatch_event_target" }

func (t EventTarget) TerraformAttributes() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"rule":           t.Rule.TerraformRef("name"),
		"event_bus_name": cty.StringVal(t.EventBusName),
		"target_id":      cty.StringVal(t.TargetID),
		"arn":            t.Function.TerraformRef("arn"),
	})
}
