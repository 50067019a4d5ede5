package construct

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sync"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/inmemorystore"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resourcestore"
)

var stackIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)

// Env is the account and region a stack deploys into.
type Env struct {
	Account string
	Region  string
}

// StackProps are the stack-level settings.
type StackProps struct {
	Env         Env
	Description string
	Tags        map[string]string
}

// Stack is a deployable unit of resources.
type Stack struct {
	id    string
	props StackProps
	store resourcestore.Store

	mu      sync.Mutex
	handles map[string]*Handle
	tfNames map[string]string // Key: "<tf type>.<tf name>", Value: construct ID
}

// NewStack creates a stack and attaches it to app.
func NewStack(app *App, id string, props StackProps) (*Stack, error) {
	if !stackIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid stack ID %q: must start with a letter and contain only letters, digits and hyphens", id)
	}
	s := &Stack{
		id:      id,
		props:   props,
		store:   inmemorystore.New(),
		handles: make(map[string]*Handle),
		tfNames: make(map[string]string),
	}
	if err := app.addStack(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the stack ID, which is also the deployed stack name.
func (s *Stack) ID() string { return s.id }

// Env returns the deployment environment of the stack.
func (s *Stack) Env() Env { return s.props.Env }

// Description returns the stack description.
func (s *Stack) Description() string { return s.props.Description }

// Tags returns the stack tags sorted by key.
func (s *Stack) Tags() []string {
	return slices.Sorted(maps.Keys(s.props.Tags))
}

// Tag returns the value of a stack tag.
func (s *Stack) Tag(key string) string { return s.props.Tags[key] }

// Add registers res under id and returns a handle for referencing it.
// Adding an identical resource again returns the existing handle.
func (s *Stack) Add(ctx context.Context, id string, res resourcestore.Resource) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res == nil {
		return nil, fmt.Errorf("stack %s: resource %q is nil", s.id, id)
	}
	tfName, err := TerraformName(id)
	if err != nil {
		return nil, fmt.Errorf("stack %s: %w", s.id, err)
	}
	key := res.TerraformType() + "." + tfName
	if other, taken := s.tfNames[key]; taken && other != id && res.TerraformType() != "" {
		return nil, fmt.Errorf("stack %s: constructs %q and %q both map to Terraform resource %s", s.id, other, id, key)
	}
	if err := s.store.Put(ctx, id, res); err != nil {
		return nil, fmt.Errorf("stack %s: %w", s.id, err)
	}
	if h, ok := s.handles[id]; ok {
		return h, nil
	}

	h := &Handle{
		ConstructID:   id,
		LogicalID:     LogicalID(s.id, id),
		TerraformType: res.TerraformType(),
		TerraformName: tfName,
	}
	s.handles[id] = h
	if res.TerraformType() != "" {
		s.tfNames[key] = id
	}
	ctxlog.FromContext(ctx).Debug("Resource declared.", "stack", s.id, "construct", id, "type", res.CloudFormationType())
	return h, nil
}

// Handle returns the handle of a previously added construct.
func (s *Stack) Handle(id string) (*Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[id]
	return h, ok
}

// Resources lists the declared resources sorted by construct ID.
func (s *Stack) Resources(ctx context.Context) ([]resourcestore.Entry, error) {
	return s.store.List(ctx)
}
