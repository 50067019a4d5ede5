// Package resources declares the typed infrastructure resources the stacks
// are built from. Every type implements resourcestore.Resource and renders
// to an AWS CloudFormation resource and its Terraform AWS provider
// counterpart.
package resources
