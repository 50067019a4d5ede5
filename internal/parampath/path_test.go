package parampath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_RoundTrip(t *testing.T) {
	raws := []string{
		"/orcabus/workflows/dragen-wgts-rna/",
		"/orcabus/workflows/dragen-wgts-rna/workflow-name",
		"/orcabus/workflows/dragen-wgts-rna/ora-reference-paths-by-ora-version/2.7.0",
	}

	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			p, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, p.String())
		})
	}
}

func TestPath_Join(t *testing.T) {
	root := MustParse("/orcabus/workflows/dragen-wgts-rna/")

	leaf, err := root.Join("workflow-name")
	require.NoError(t, err)
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/workflow-name", leaf.String())
	assert.False(t, leaf.Dir)

	nested, err := root.Join("schemas/complete-data-draft", "latest")
	require.NoError(t, err)
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/schemas/complete-data-draft/latest", nested.String())

	dir, err := root.Join("schemas/")
	require.NoError(t, err)
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/schemas/", dir.String())

	// The receiver is never modified.
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/", root.String())

	_, err = root.Join("bad segment")
	assert.Error(t, err)
}

func TestPath_Ancestry(t *testing.T) {
	root := MustParse("/orcabus/workflows/dragen-wgts-rna/")
	leaf := MustParse("/orcabus/workflows/dragen-wgts-rna/logs-prefix")
	sibling := MustParse("/orcabus/workflows/dragen-wgts-rna-other/logs-prefix")

	assert.True(t, leaf.HasPrefix(root))
	assert.True(t, root.IsAncestorOf(leaf))
	assert.False(t, leaf.IsAncestorOf(root))
	assert.False(t, root.IsAncestorOf(root))
	assert.True(t, root.HasPrefix(root))
	assert.False(t, sibling.HasPrefix(root))
}

func TestPath_Equal(t *testing.T) {
	a := MustParse("/a/b")
	b := MustParse("/a/b/")
	c := MustParse("/a/c")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Path)(nil).Equal(nil))
}
