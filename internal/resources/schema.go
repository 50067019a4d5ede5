package resources

import "github.com/zclconf/go-cty/cty"

// JSONSchemaDraft4 is the only schema format the EventBridge schema registry
// accepts besides OpenAPI.
const JSONSchemaDraft4 = "JSONSchemaDraft4"

// EventSchema is a schema registered in an existing EventBridge schema
// registry.
type EventSchema struct {
	RegistryName string
	SchemaName   string
	Description  string
	Content      string
}

func (s EventSchema) CloudFormationType() string { return "AWS::EventSchemas::Schema" }

func (s EventSchema) CloudFormationProperties() cty.Value {
	return object(map[string]cty.Value{
		"RegistryName": cty.StringVal(s.RegistryName),
		"SchemaName":   cty.StringVal(s.SchemaName),
		"Type":         cty.StringVal(JSONSchemaDraft4),
		"Description":  optionalString(s.Description),
		"Content":      cty.StringVal(s.Content),
	})
}

func (s EventSchema) TerraformType() string { return "aws_schemas_schema" }

func (s EventSchema) TerraformAttributes() cty.Value {
	return object(map[string]cty.Value{
		"registry_name": cty.StringVal(s.RegistryName),
		"name":          cty.StringVal(s.SchemaName),
		"type":          cty.StringVal(JSONSchemaDraft4),
		"description":   optionalString(s.Description),
		"content":       cty.StringVal(s.Content),
	})
}
