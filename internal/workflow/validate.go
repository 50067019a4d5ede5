package workflow

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
)

func init() {
	// A table that does not line up with its version enumeration is a
	// programmer error; refuse to produce any definitions.
	if err := Validate(); err != nil {
		panic(fmt.Errorf("workflow constants: %w", err))
	}
}

// Validate checks that every per-version table covers exactly its version
// enumeration and that the values are well formed.
func Validate() error {
	var errs []error

	errs = append(errs, checkKeys("pipeline IDs", WorkflowVersions, PipelineIDsByWorkflowVersion))
	errs = append(errs, checkKeys("references", WorkflowVersions, ReferencesByWorkflowVersion))
	errs = append(errs, checkKeys("annotation versions", WorkflowVersions, AnnotationVersionsByWorkflowVersion))
	errs = append(errs, checkKeys("default inputs", WorkflowVersions, DefaultInputsByWorkflowVersion))
	errs = append(errs, checkKeys("ORA references", OraVersions, OraReferencesByOraVersion))
	errs = append(errs, checkKeys("annotation paths", AnnotationVersions, AnnotationPathsByAnnotationVersion))
	errs = append(errs, checkKeys("new workflow manager flags", stage.Names, NewWorkflowManagerIsDeployed))

	if !slices.Contains(WorkflowVersions, DefaultWorkflowVersion) {
		errs = append(errs, fmt.Errorf("default workflow version %q is not a known version", DefaultWorkflowVersion))
	}
	if !slices.Contains(OraVersions, DefaultOraVersion) {
		errs = append(errs, fmt.Errorf("default ORA version %q is not a known version", DefaultOraVersion))
	}

	for version, pipelineID := range PipelineIDsByWorkflowVersion {
		if _, err := uuid.Parse(pipelineID); err != nil {
			errs = append(errs, fmt.Errorf("pipeline ID for %s: %w", version, err))
		}
	}
	for version, ref := range ReferencesByWorkflowVersion {
		if ref.Name == "" || ref.Structure == "" {
			errs = append(errs, fmt.Errorf("reference for %s: name and structure are required", version))
		}
		errs = append(errs, checkTarball(fmt.Sprintf("reference for %s", version), ref.Tarball))
	}
	for version, tarball := range OraReferencesByOraVersion {
		errs = append(errs, checkTarball(fmt.Sprintf("ORA reference for %s", version), tarball))
	}
	for version, gtf := range AnnotationPathsByAnnotationVersion {
		if !strings.HasPrefix(gtf, "s3://") {
			errs = append(errs, fmt.Errorf("annotation path for %s: %q is not an s3 uri", version, gtf))
		}
	}
	for version, annotation := range AnnotationVersionsByWorkflowVersion {
		if !slices.Contains(AnnotationVersions, annotation) {
			errs = append(errs, fmt.Errorf("annotation version %q for %s is not a known version", annotation, version))
		}
	}

	return errors.Join(errs...)
}

// checkKeys verifies that the key set of table is exactly the enumeration.
func checkKeys[K comparable, V any](table string, enumeration []K, values map[K]V) error {
	var errs []error
	for _, key := range enumeration {
		if _, ok := values[key]; !ok {
			errs = append(errs, fmt.Errorf("%s: missing entry for %v", table, key))
		}
	}
	for key := range values {
		if !slices.Contains(enumeration, key) {
			errs = append(errs, fmt.Errorf("%s: unexpected entry for %v", table, key))
		}
	}
	return errors.Join(errs...)
}

func checkTarball(what, uri string) error {
	if !strings.HasPrefix(uri, "s3://") {
		return fmt.Errorf("%s: %q is not an s3 uri", what, uri)
	}
	if !strings.HasSuffix(uri, ".tar.gz") {
		return fmt.Errorf("%s: %q is not a .tar.gz bundle", what, uri)
	}
	return nil
}
