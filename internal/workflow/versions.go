package workflow

import "strings"

// WorkflowVersion identifies a released version of the DRAGEN WGTS RNA
// pipeline. It is extended every time a new version is released.
type WorkflowVersion string

// OraVersion identifies an ORA compression reference release.
type OraVersion string

// AnnotationVersion identifies a GENCODE annotation release.
type AnnotationVersion string

const (
	V4_4_4 WorkflowVersion = "4.4.4"

	Ora2_7_0 OraVersion = "2.7.0"

	Gencode44 AnnotationVersion = "44"
)

// WorkflowVersions is the closed enumeration of workflow versions.
var WorkflowVersions = []WorkflowVersion{V4_4_4}

// OraVersions is the closed enumeration of ORA reference versions.
var OraVersions = []OraVersion{Ora2_7_0}

// AnnotationVersions is the closed enumeration of annotation versions.
var AnnotationVersions = []AnnotationVersion{Gencode44}

// CastToWorkflowVersion returns the known workflow version matching text and
// whether one was found.
func CastToWorkflowVersion(text string) (WorkflowVersion, bool) {
	for _, v := range WorkflowVersions {
		if string(v) == strings.TrimSpace(text) {
			return v, true
		}
	}
	return "", false
}

func IsKnownWorkflowVersion(text string) bool {
	_, ok := CastToWorkflowVersion(text)
	return ok
}

func IsKnownOraVersion(text string) bool {
	for _, v := range OraVersions {
		if string(v) == text {
			return true
		}
	}
	return false
}

func IsKnownAnnotationVersion(text string) bool {
	for _, v := range AnnotationVersions {
		if string(v) == text {
			return true
		}
	}
	return false
}
