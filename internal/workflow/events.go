package workflow

import "github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"

// Event bus naming.
const (
	EventBusName = "OrcaBusMain"
	EventSource  = "orcabus.dragenwgtsrna"

	WorkflowManagerEventSource = "orcabus.workflowmanager"
	ICAv2WESEventSource        = "orcabus.icav2wesmanager"
)

// Detail types.
const (
	WorkflowRunStateChangeDetailType = "WorkflowRunStateChange"
	WorkflowRunUpdateDetailType      = "WorkflowRunUpdate"
	ICAv2WESRequestDetailType        = "Icav2WesRequest"
	ICAv2WESStateChangeDetailType    = "Icav2WesAnalysisStateChange"
	FastqSyncDetailType              = "FastqSync"
)

// Workflow run statuses used by rules.
const (
	DraftStatus = "DRAFT"
	ReadyStatus = "READY"
)

// NewWorkflowManagerIsDeployed records, per stage, whether the new workflow
// manager consumes WorkflowRunUpdate events.
var NewWorkflowManagerIsDeployed = map[stage.Name]bool{
	stage.Beta:  true,
	stage.Gamma: false,
	stage.Prod:  false,
}
