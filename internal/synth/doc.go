// Package synth renders the stacks of an app into deployment templates.
//
// Three formats are supported: CloudFormation JSON, CloudFormation YAML and
// Terraform HCL. Rendering is deterministic; the same app always produces
// byte-identical output. Writing an app renders every stack first and only
// then touches the output directory, so a failing stack leaves nothing
// behind.
package synth
