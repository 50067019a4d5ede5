package stage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Bucket placeholders resolved per stage by SubstituteBucketConstants.
const (
	CacheBucketPlaceholder = "{__CACHE_BUCKET__}"
	CachePrefixPlaceholder = "{__CACHE_PREFIX__}"
)

// Env is the platform configuration of a single stage.
type Env struct {
	Stage          Name
	AccountID      string
	Region         string
	ICAv2ProjectID string
	CacheBucket    string
	CachePrefix    string
}

// Table resolves stages to their platform configuration.
type Table map[Name]Env

// Lookup returns the configuration for a stage.
func (t Table) Lookup(name Name) (Env, error) {
	env, ok := t[name]
	if !ok {
		return Env{}, fmt.Errorf("%w: %q has no entry in the stage table", ErrUnknownStage, name)
	}
	return env, nil
}

// SubstituteBucketConstants resolves the cache bucket placeholders of a URI
// template for the given stage.
func (t Table) SubstituteBucketConstants(template string, name Name) (string, error) {
	env, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	return strings.NewReplacer(
		CacheBucketPlaceholder, env.CacheBucket,
		CachePrefixPlaceholder, env.CachePrefix,
	).Replace(template), nil
}

// Validate checks that the table covers every stage with usable values.
func (t Table) Validate() error {
	var errs []error
	for _, name := range Names {
		env, ok := t[name]
		if !ok {
			errs = append(errs, fmt.Errorf("stage %s: missing", name))
			continue
		}
		errs = append(errs, env.validate())
	}
	for name := range t {
		if !slices.Contains(Names, name) {
			errs = append(errs, fmt.Errorf("stage %q: not a known stage", name))
		}
	}
	return errors.Join(errs...)
}

func (e Env) validate() error {
	var errs []error
	if strings.TrimSpace(e.AccountID) == "" {
		errs = append(errs, fmt.Errorf("stage %s: account_id is required", e.Stage))
	}
	if strings.TrimSpace(e.Region) == "" {
		errs = append(errs, fmt.Errorf("stage %s: region is required", e.Stage))
	}
	if _, err := uuid.Parse(e.ICAv2ProjectID); err != nil {
		errs = append(errs, fmt.Errorf("stage %s: icav2_project_id: %w", e.Stage, err))
	}
	if strings.TrimSpace(e.CacheBucket) == "" || strings.Contains(e.CacheBucket, "/") {
		errs = append(errs, fmt.Errorf("stage %s: cache_bucket must be a bare bucket name, got %q", e.Stage, e.CacheBucket))
	}
	if e.CachePrefix != "" && !strings.HasSuffix(e.CachePrefix, "/") {
		errs = append(errs, fmt.Errorf("stage %s: cache_prefix %q must end with a slash", e.Stage, e.CachePrefix))
	}
	return errors.Join(errs...)
}
