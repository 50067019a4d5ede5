package resources

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
)

// Function is a Lambda function whose code bundle lives in an S3 bucket.
type Function struct {
	FunctionName string
	Description  string
	Runtime      string
	Architecture string
	Handler      string
	CodeBucket   string
	CodeKey      string
	MemorySize   int
	Timeout      int
	Role         *construct.Handle
	Environment  map[string]string
}

func (f Function) CloudFormationType() string { return "AWS::Lambda::Function" }

func (f Function) CloudFormationProperties() cty.Value {
	env := cty.NullVal(cty.EmptyObject)
	if len(f.Environment) > 0 {
		env = cty.ObjectVal(map[string]cty.Value{"Variables": stringMap(f.Environment)})
	}
	return object(map[string]cty.Value{
		"FunctionName":  cty.StringVal(f.FunctionName),
		"Description":   optionalString(f.Description),
		"Runtime":       cty.StringVal(f.Runtime),
		"Architectures": stringList([]string{f.Architecture}),
		"Handler":       cty.StringVal(f.Handler),
		"Code": cty.ObjectVal(map[string]cty.Value{
			"S3Bucket": cty.StringVal(f.CodeBucket),
			"S3Key":    cty.StringVal(f.CodeKey),
		}),
		"MemorySize":  optionalNumber(f.MemorySize),
		"Timeout":     optionalNumber(f.Timeout),
		"Role":        f.Role.GetAtt("Arn"),
		"Environment": env,
	})
}

func (f Function) TerraformType() string { return "aws_lambda_function" }

func (f Function) TerraformAttributes() cty.Value {
	env := cty.NullVal(cty.EmptyObject)
	if len(f.Environment) > 0 {
		env = cty.ObjectVal(map[string]cty.Value{"variables": stringMap(f.Environment)})
	}
	return object(map[string]cty.Value{
		"function_name": cty.StringVal(f.FunctionName),
		"description":   optionalString(f.Description),
		"runtime":       cty.StringVal(f.Runtime),
		"architectures": stringList([]string{f.Architecture}),
		"handler":       cty.StringVal(f.Handler),
		"s3_bucket":     cty.StringVal(f.CodeBucket),
		"s3_key":        cty.StringVal(f.CodeKey),
		"memory_size":   optionalNumber(f.MemorySize),
		"timeout":       optionalNumber(f.Timeout),
		"role":          f.Role.TerraformRef("arn"),
		"environment":   env,
	})
}

func (f Function) TerraformBlockAttributes() []string {
	return []string{"environment"}
}

// InvokePermission allows an AWS service to invoke a function declared in
// the same stack.
type InvokePermission struct {
	Function  *construct.Handle
	Principal string
	Source    *construct.Handle
}

func (p InvokePermission) CloudFormationType() string { return "AWS::Lambda::Permission" }

func (p InvokePermission) CloudFormationProperties() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"Action":       cty.StringVal("lambda:InvokeFunction"),
		"FunctionName": p.Function.GetAtt("Arn"),
		"Principal":    cty.StringVal(p.Principal),
		"SourceArn":    p.Source.GetAtt("Arn"),
	})
}

func (p InvokePermission) TerraformType() string { return "aws_lambda_permission" }

func (p InvokePermission) TerraformAttributes() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"action":        cty.StringVal("lambda:InvokeFunction"),
		"function_name": p.Function.TerraformRef("function_name"),
		"principal":     cty.StringVal(p.Principal),
		"source_arn":    p.Source.TerraformRef("arn"),
	})
}
