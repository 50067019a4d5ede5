package config

import (
	"fmt"
	"maps"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ssm"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

// SSMParameterValues returns the parameter values for a stage.
func SSMParameterValues(name stage.Name, table stage.Table) (ssm.Values, error) {
	env, err := table.Lookup(name)
	if err != nil {
		return ssm.Values{}, err
	}
	logsPrefix, err := table.SubstituteBucketConstants(workflow.LogsPrefixTemplate, name)
	if err != nil {
		return ssm.Values{}, err
	}
	outputPrefix, err := table.SubstituteBucketConstants(workflow.OutputPrefixTemplate, name)
	if err != nil {
		return ssm.Values{}, err
	}

	return ssm.Values{
		WorkflowName:    workflow.Name,
		WorkflowVersion: workflow.DefaultWorkflowVersion,

		PayloadVersion: workflow.DefaultPayloadVersion,

		InputsByWorkflowVersion: maps.Clone(workflow.DefaultInputsByWorkflowVersion),

		PipelineIDsByWorkflowVersion: maps.Clone(workflow.PipelineIDsByWorkflowVersion),
		ICAv2ProjectID:               env.ICAv2ProjectID,
		LogsPrefix:                   logsPrefix,
		OutputPrefix:                 outputPrefix,

		ReferenceByWorkflowVersion:             maps.Clone(workflow.ReferencesByWorkflowVersion),
		OraReferenceByOraVersion:               maps.Clone(workflow.OraReferencesByOraVersion),
		AnnotationVersionByWorkflowVersion:     maps.Clone(workflow.AnnotationVersionsByWorkflowVersion),
		AnnotationReferenceByAnnotationVersion: maps.Clone(workflow.AnnotationPathsByAnnotationVersion),
	}, nil
}

// SSMParameterPaths returns the parameter paths. They do not vary by stage.
func SSMParameterPaths() ssm.Paths {
	root := parampath.MustParse(workflow.SSMRootPrefix)
	return ssm.Paths{
		RootPrefix: root,

		WorkflowName:    root.MustJoin(workflow.SSMLeafWorkflowName),
		WorkflowVersion: root.MustJoin(workflow.SSMLeafDefaultWorkflowVersion),

		PayloadVersion: root.MustJoin(workflow.SSMLeafPayloadVersion),

		PrefixDefaultInputsByWorkflowVersion: root.MustJoin(workflow.SSMLeafInputsByWorkflowVersion),

		PrefixPipelineIDsByWorkflowVersion: root.MustJoin(workflow.SSMLeafPipelineIDsByWorkflowVersion),
		ICAv2ProjectID:                     root.MustJoin(workflow.SSMLeafICAv2ProjectID),
		LogsPrefix:                         root.MustJoin(workflow.SSMLeafLogsPrefix),
		OutputPrefix:                       root.MustJoin(workflow.SSMLeafOutputPrefix),

		ReferenceRootPrefix:                    root.MustJoin(workflow.SSMLeafReferencePathsByVersion),
		OraCompressionRootPrefix:               root.MustJoin(workflow.SSMLeafOraReferencePathsByOraVersion),
		AnnotationVersionByWorkflowRootPrefix:  root.MustJoin(workflow.SSMLeafAnnotationVersionsByVersion),
		AnnotationReferenceByAnnotationVersion: root.MustJoin(workflow.SSMLeafAnnotationPathsByAnnotation),
	}
}

// StatefulStackProps returns the stateful stack configuration for a stage.
func StatefulStackProps(name stage.Name, table stage.Table) (*StatefulStackConfig, error) {
	env, err := table.Lookup(name)
	if err != nil {
		return nil, err
	}
	values, err := SSMParameterValues(name, table)
	if err != nil {
		return nil, err
	}
	return &StatefulStackConfig{
		Env:                env,
		SSMParameterPaths:  SSMParameterPaths(),
		SSMParameterValues: values,
	}, nil
}

// StatelessStackProps returns the stateless stack configuration for a stage.
func StatelessStackProps(name stage.Name, table stage.Table) (*StatelessStackConfig, error) {
	env, err := table.Lookup(name)
	if err != nil {
		return nil, err
	}
	deployed, ok := workflow.NewWorkflowManagerIsDeployed[name]
	if !ok {
		return nil, fmt.Errorf("no workflow manager flag for stage %s", name)
	}
	return &StatelessStackConfig{
		Env:                          env,
		EventBusName:                 workflow.EventBusName,
		SSMParameterPaths:            SSMParameterPaths(),
		IsNewWorkflowManagerDeployed: deployed,
	}, nil
}
