package synth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/fsutil"
)

// ManifestFile is the name of the manifest written next to the templates.
const ManifestFile = "manifest.json"

// Render renders a single stack.
func Render(ctx context.Context, stack *construct.Stack, format Format) ([]byte, error) {
	switch format {
	case CloudFormationJSON:
		return renderCloudFormationJSON(ctx, stack)
	case CloudFormationYAML:
		return renderCloudFormationYAML(ctx, stack)
	case Terraform:
		return renderTerraform(ctx, stack)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Manifest describes the artifacts of one synthesis run.
type Manifest struct {
	Format Format          `json:"format"`
	Stacks []StackArtifact `json:"stacks"`
}

// StackArtifact describes one rendered stack.
type StackArtifact struct {
	ID          string            `json:"id"`
	Account     string            `json:"account,omitempty"`
	Region      string            `json:"region,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Resources   int               `json:"resources"`
	File        string            `json:"file"`
	SHA256      string            `json:"sha256"`
}

// Files returns the manifest and every artifact path, relative to the
// output directory.
func (m *Manifest) Files() []string {
	files := []string{ManifestFile}
	for _, s := range m.Stacks {
		files = append(files, s.File)
	}
	return files
}

// Write renders every stack of app and replaces the contents of dir with the
// templates and the manifest. dir is swapped in only after every file has
// been written, so a failed run leaves the previous output untouched.
func Write(ctx context.Context, app *construct.App, dir string, format Format) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)

	manifest := &Manifest{Format: format}
	rendered := map[string][]byte{}
	for _, stack := range app.Stacks() {
		refs, err := stack.References(ctx)
		if err != nil {
			return nil, err
		}
		logger.Debug("Stack references resolved.", "stack", stack.ID(), "resources", refs.Len())

		content, err := Render(ctx, stack, format)
		if err != nil {
			return nil, fmt.Errorf("failed to render stack %s: %w", stack.ID(), err)
		}
		entries, err := stack.Resources(ctx)
		if err != nil {
			return nil, err
		}

		tags := make(map[string]string)
		for _, k := range stack.Tags() {
			tags[k] = stack.Tag(k)
		}
		sum := sha256.Sum256(content)
		artifact := StackArtifact{
			ID:          stack.ID(),
			Account:     stack.Env().Account,
			Region:      stack.Env().Region,
			Description: stack.Description(),
			Tags:        tags,
			Resources:   len(entries),
			File:        format.artifactPath(stack.ID()),
			SHA256:      hex.EncodeToString(sum[:]),
		}
		manifest.Stacks = append(manifest.Stacks, artifact)
		rendered[artifact.File] = content
	}

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	rendered[ManifestFile] = append(manifestJSON, '\n')

	err = fsutil.ReplaceDir(dir, func(staging string) error {
		for _, rel := range manifest.Files() {
			path := filepath.Join(staging, rel)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(path, rendered[rel], 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", rel, err)
			}
			logger.Debug("Artifact staged.", "file", rel, "bytes", len(rendered[rel]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write output directory %s: %w", dir, err)
	}
	logger.Info("Synthesis complete.", "dir", dir, "format", format, "stacks", len(manifest.Stacks))
	return manifest, nil
}
