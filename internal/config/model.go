package config

import (
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ssm"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
)

// StatefulStackConfig configures the stack that owns the parameters and
// the event schemas.
type StatefulStackConfig struct {
	Env                stage.Env
	SSMParameterPaths  ssm.Paths
	SSMParameterValues ssm.Values
}

// StatelessStackConfig configures the stack that owns the Lambda functions
// and event rules.
type StatelessStackConfig struct {
	Env                          stage.Env
	EventBusName                 string
	SSMParameterPaths            ssm.Paths
	IsNewWorkflowManagerDeployed bool
}
