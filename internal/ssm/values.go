package ssm

import "github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"

// Values are the concrete values stored under Paths for one stage.
type Values struct {
	// Detail
	WorkflowName    string
	WorkflowVersion workflow.WorkflowVersion

	// Payload
	PayloadVersion string

	// Inputs
	InputsByWorkflowVersion map[workflow.WorkflowVersion]workflow.DefaultInputs

	// Engine parameters
	PipelineIDsByWorkflowVersion map[workflow.WorkflowVersion]string
	ICAv2ProjectID               string
	LogsPrefix                   string
	OutputPrefix                 string

	// References
	ReferenceByWorkflowVersion             map[workflow.WorkflowVersion]workflow.Reference
	OraReferenceByOraVersion               map[workflow.OraVersion]string
	AnnotationVersionByWorkflowVersion     map[workflow.WorkflowVersion]workflow.AnnotationVersion
	AnnotationReferenceByAnnotationVersion map[workflow.AnnotationVersion]string
}
