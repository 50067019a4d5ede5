package stage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/fsutil"
)

//go:embed default_stages.hcl
var defaultStagesHCL []byte

const defaultStagesFilename = "default_stages.hcl"

// stageBlock is the HCL schema of a single `stage "<NAME>" { ... }` block.
type stageBlock struct {
	Name           string `hcl:"name,label"`
	AccountID      string `hcl:"account_id"`
	Region         string `hcl:"region"`
	ICAv2ProjectID string `hcl:"icav2_project_id"`
	CacheBucket    string `hcl:"cache_bucket"`
	CachePrefix    string `hcl:"cache_prefix,optional"`
}

// fileRoot decodes every top-level block of a stage table file. Anything
// other than stage blocks is rejected by the decoder.
type fileRoot struct {
	Stages []*stageBlock `hcl:"stage,block"`
}

// Default returns the stage table shipped with the binary.
func Default() (Table, error) {
	table := Table{}
	if err := decodeInto(table, defaultStagesFilename, defaultStagesHCL); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid default stage table")
	}
	return table, nil
}

// Load reads a stage table from .hcl files. Each path may be a file or a
// directory. Without paths the embedded default table is returned.
func Load(ctx context.Context, paths ...string) (Table, error) {
	logger := ctxlog.FromContext(ctx)

	if len(paths) == 0 {
		logger.Debug("No stage table override given, using embedded defaults.")
		return Default()
	}
	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover stage table files")
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no stage table files found in %v", paths)
	}

	parser := hclparse.NewParser()
	table := Table{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, errors.Wrapf(diags, "failed to parse stage table %s", file)
		}
		if err := decodeBody(table, file, hclFile.Body); err != nil {
			return nil, err
		}
	}
	logger.Debug("Stage table loaded.", "files", len(files), "stages", len(table))

	if err := table.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid stage table")
	}
	return table, nil
}

func decodeInto(table Table, filename string, src []byte) error {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return errors.Wrapf(diags, "failed to parse stage table %s", filename)
	}
	return decodeBody(table, filename, hclFile.Body)
}

func decodeBody(table Table, filename string, body hcl.Body) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return errors.Wrapf(diags, "failed to decode stage table %s", filename)
	}
	for _, block := range root.Stages {
		name := Name(block.Name)
		if _, exists := table[name]; exists {
			return fmt.Errorf("stage table %s: stage %s declared more than once", filename, name)
		}
		table[name] = Env{
			Stage:          name,
			AccountID:      block.AccountID,
			Region:         block.Region,
			ICAv2ProjectID: block.ICAv2ProjectID,
			CacheBucket:    block.CacheBucket,
			CachePrefix:    block.CachePrefix,
		}
	}
	return nil
}
