// Package construct holds the deployment-definition tree: an App owns an
// ordered list of Stacks, and each Stack owns the resources declared in it.
//
// Resources are registered under a construct ID that is unique within the
// stack. From that ID the package derives the two names a resource is known
// by once synthesized: a CloudFormation logical ID and a Terraform resource
// name. Both derivations are deterministic, so synthesizing the same app twice
// yields identical templates.
package construct
