package ssm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
)

func testPaths() Paths {
	root := parampath.MustParse("/orcabus/workflows/test/")
	return Paths{
		RootPrefix:                             root,
		WorkflowName:                           root.MustJoin("workflow-name"),
		WorkflowVersion:                        root.MustJoin("default-workflow-version"),
		PayloadVersion:                         root.MustJoin("payload-version"),
		PrefixDefaultInputsByWorkflowVersion:   root.MustJoin("inputs"),
		PrefixPipelineIDsByWorkflowVersion:     root.MustJoin("pipeline-ids"),
		ICAv2ProjectID:                         root.MustJoin("icav2-project-id"),
		LogsPrefix:                             root.MustJoin("logs-prefix"),
		OutputPrefix:                           root.MustJoin("output-prefix"),
		ReferenceRootPrefix:                    root.MustJoin("references"),
		OraCompressionRootPrefix:               root.MustJoin("ora"),
		AnnotationVersionByWorkflowRootPrefix:  root.MustJoin("annotation-versions"),
		AnnotationReferenceByAnnotationVersion: root.MustJoin("annotation-paths"),
	}
}

func TestPaths_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *Paths)
		errMsg string
	}{
		{
			name:   "valid",
			mutate: func(p *Paths) {},
		},
		{
			name:   "missing root",
			mutate: func(p *Paths) { p.RootPrefix = nil },
			errMsg: "root prefix is not set",
		},
		{
			name:   "unset path",
			mutate: func(p *Paths) { p.LogsPrefix = nil },
			errMsg: "logs prefix is not set",
		},
		{
			name:   "outside root",
			mutate: func(p *Paths) { p.OutputPrefix = parampath.MustParse("/elsewhere/output-prefix") },
			errMsg: "is not under",
		},
		{
			name:   "root itself",
			mutate: func(p *Paths) { p.OutputPrefix = parampath.MustParse("/orcabus/workflows/test") },
			errMsg: "is not under",
		},
		{
			name:   "duplicate",
			mutate: func(p *Paths) { p.OraCompressionRootPrefix = p.ReferenceRootPrefix },
			errMsg: "share the path",
		},
		{
			name: "scalar shadows prefix",
			mutate: func(p *Paths) {
				p.ReferenceRootPrefix = p.WorkflowName.MustJoin("references")
			},
			errMsg: "is an ancestor of",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paths := testPaths()
			tc.mutate(&paths)

			err := paths.Validate()

			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestPaths_List(t *testing.T) {
	paths := testPaths()

	list := paths.List()

	assert.Len(t, list, 12)
	assert.Equal(t, "/orcabus/workflows/test/workflow-name", list[0].String())
}
