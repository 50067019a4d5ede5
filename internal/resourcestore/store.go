// Package resourcestore defines the interface for storing and retrieving the
// resources declared inside a single deployment stack.
//
// # Why Resource Store Exists
//
// Stack composition registers many resources through independent builders
// (the parameter registrar, the schema registry builder, the Lambda
// registry). The store is the one place those builders meet, and it enforces
// the rules every builder relies on:
//   - **Idempotence:** registering an identical resource twice is a no-op
//   - **Conflict detection:** registering a different resource under an
//     existing construct ID fails with ErrConflict
//   - **Determinism:** List always returns entries sorted by construct ID
//
// # Lifecycle
//
// A store is created once per stack, filled while the stack is built, and
// read by the synthesizer. Nothing is persisted between runs.
package resourcestore

import (
	"context"
	"errors"

	"github.com/zclconf/go-cty/cty"
)

// ErrConflict is returned when a construct ID is already bound to a
// different resource.
var ErrConflict = errors.New("conflicting resource")

// Resource is a single declared infrastructure resource. Each resource
// renders to CloudFormation and to Terraform; an empty type means the
// resource has no counterpart on that platform and is skipped there.
type Resource interface {
	CloudFormationType() string
	CloudFormationProperties() cty.Value
	TerraformType() string
	TerraformAttributes() cty.Value
}

// Entry pairs a resource with the construct ID it was registered under.
type Entry struct {
	ID       string
	Resource Resource
}

// Store is the interface for the resources declared in a stack.
//
// Implementations MUST be safe for concurrent use.
type Store interface {
	// Put registers a resource under a construct ID. Re-registering an
	// equal resource is a no-op. A different resource under the same ID
	// returns an error wrapping ErrConflict.
	Put(ctx context.Context, id string, res Resource) error

	// Get returns the resource registered under id, or false if none is.
	Get(ctx context.Context, id string) (Resource, bool, error)

	// List returns every entry sorted by construct ID.
	List(ctx context.Context) ([]Entry, error)
}

// Equal reports whether two resources declare the same thing on both
// platforms.
func Equal(a, b Resource) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.CloudFormationType() == b.CloudFormationType() &&
		a.TerraformType() == b.TerraformType() &&
		a.CloudFormationProperties().RawEquals(b.CloudFormationProperties()) &&
		a.TerraformAttributes().RawEquals(b.TerraformAttributes())
}

// TerraformBlocker is implemented by resources whose Terraform form uses
// nested blocks. The named top-level attributes are rendered as blocks: an
// object becomes one block, a list of objects one block per element.
type TerraformBlocker interface {
	TerraformBlockAttributes() []string
}
