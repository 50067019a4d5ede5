// Package stacks composes the two deployable stacks of the workflow.
//
// The stateful stack owns data that outlives deployments: the SSM parameters
// and the event schemas. The stateless stack owns the Lambda functions, their
// roles and the event rules that trigger them, and may be torn down and
// redeployed freely.
package stacks
