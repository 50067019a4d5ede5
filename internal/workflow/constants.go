package workflow

import "github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"

const (
	// Name is the workflow name shared with the workflow manager.
	Name = "dragen-wgts-rna"

	// DefaultWorkflowVersion is the version launched when a READY event does
	// not pin one.
	DefaultWorkflowVersion WorkflowVersion = V4_4_4

	// DefaultPayloadVersion is the payload version this service accepts. The
	// production workflow shares the workflow name, so rules also filter on it.
	DefaultPayloadVersion = "2025.08.05"

	DefaultOraVersion OraVersion = Ora2_7_0

	// StackPrefix groups event rules and functions.
	StackPrefix = "orca-dragen-wgts-rna"

	// SchemaRegistryName is the shared data schema registry.
	SchemaRegistryName = "orcabus.data"
)

// LogsPrefixTemplate and OutputPrefixTemplate are resolved per stage by
// substituting the bucket placeholders.
const (
	LogsPrefixTemplate   = "s3://" + stage.CacheBucketPlaceholder + "/" + stage.CachePrefixPlaceholder + "logs/" + Name + "/"
	OutputPrefixTemplate = "s3://" + stage.CacheBucketPlaceholder + "/" + stage.CachePrefixPlaceholder + "analysis/" + Name + "/"
)

// SSM parameter path leaves, relative to SSMRootPrefix.
const (
	SSMRootPrefix = "/orcabus/workflows/" + Name + "/"

	SSMLeafWorkflowName                  = "workflow-name"
	SSMLeafDefaultWorkflowVersion        = "default-workflow-version"
	SSMLeafPayloadVersion                = "payload-version"
	SSMLeafInputsByWorkflowVersion       = "inputs-by-workflow-version"
	SSMLeafPipelineIDsByWorkflowVersion  = "pipeline-ids-by-workflow-version"
	SSMLeafICAv2ProjectID                = "icav2-project-id"
	SSMLeafLogsPrefix                    = "logs-prefix"
	SSMLeafOutputPrefix                  = "output-prefix"
	SSMLeafReferencePathsByVersion       = "default-reference-paths-by-workflow-version"
	SSMLeafOraReferencePathsByOraVersion = "ora-reference-paths-by-ora-version"
	SSMLeafAnnotationVersionsByVersion   = "annotation-versions-by-workflow-version"
	SSMLeafAnnotationPathsByAnnotation   = "annotation-paths-by-annotation-version"
	SSMLeafSchemas                       = "schemas"
)
