// Package schemas registers the workflow's event schemas in the shared data
// schema registry and publishes where to find them through the parameter
// store.
package schemas

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resources"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

//go:embed documents/*.schema.json
var documentsFS embed.FS

// Document is one event schema shipped with the workflow.
type Document struct {
	// Key names the schema in parameter paths and construct IDs.
	Key string
	// Name is the schema name suffix inside the registry.
	Name    string
	Version string
	File    string
}

// Documents lists every schema to register.
var Documents = []Document{
	{
		Key:     "complete-data-draft",
		Name:    "CompleteDataDraft",
		Version: "1.0.0",
		File:    "documents/complete-data-draft.schema.json",
	},
}

// SchemaName is the full registry name of the document.
func (d Document) SchemaName() string {
	return workflow.EventSource + "@" + d.Name
}

// Pointer is the parameter value telling consumers where a schema lives.
type Pointer struct {
	RegistryName  string `json:"registryName"`
	SchemaName    string `json:"schemaName"`
	SchemaVersion string `json:"schemaVersion"`
}

// Content returns the compacted JSON of the document. The document must be
// a JSON object.
func (d Document) Content() (string, error) {
	raw, err := documentsFS.ReadFile(d.File)
	if err != nil {
		return "", fmt.Errorf("schema %s: %w", d.Key, err)
	}
	return compactObject(d.Key, raw)
}

func compactObject(key string, raw []byte) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("schema %s is not a JSON object: %w", key, err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("schema %s: %w", key, err)
	}
	return buf.String(), nil
}

// Build declares every document in the registry and its latest and
// versioned pointer parameters under `<root>schemas/<key>/`.
func Build(ctx context.Context, stack *construct.Stack, root *parampath.Path) error {
	for _, doc := range Documents {
		content, err := doc.Content()
		if err != nil {
			return err
		}
		if err := buildDocument(ctx, stack, root, doc, content); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Event schemas declared.", "stack", stack.ID(), "count", len(Documents))
	return nil
}

func buildDocument(ctx context.Context, stack *construct.Stack, root *parampath.Path, doc Document, content string) error {
	_, err := stack.Add(ctx, "schema-"+doc.Key, resources.EventSchema{
		RegistryName: workflow.SchemaRegistryName,
		SchemaName:   doc.SchemaName(),
		Description:  fmt.Sprintf("%s schema for %s", doc.Name, workflow.Name),
		Content:      content,
	})
	if err != nil {
		return fmt.Errorf("failed to declare schema %s: %w", doc.Key, err)
	}

	pointer, err := json.Marshal(Pointer{
		RegistryName:  workflow.SchemaRegistryName,
		SchemaName:    doc.SchemaName(),
		SchemaVersion: doc.Version,
	})
	if err != nil {
		return err
	}

	for _, leaf := range []string{"latest", doc.Version} {
		path, err := root.Join(workflow.SSMLeafSchemas, doc.Key, leaf)
		if err != nil {
			return fmt.Errorf("schema %s: %w", doc.Key, err)
		}
		id := fmt.Sprintf("schema-%s-ssm-%s", doc.Key, leaf)
		if _, err := stack.Add(ctx, id, resources.StringParameter{Name: path.String(), Value: string(pointer)}); err != nil {
			return fmt.Errorf("failed to declare schema parameter %s: %w", path, err)
		}
	}
	return nil
}
