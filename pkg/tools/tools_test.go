package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/blocksaver/pkg/block"
)

func TestRegistry_DefaultStub(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	assert.Equal(t, DefaultStubTool, r.StubTool())
	assert.True(t, r.Has(DefaultStubTool))
	assert.Error(t, r.Register(DefaultStubTool, nil))
}

func TestRegistry_RegisterErrors(t *testing.T) {
	t.Parallel()

	r := NewRegistry("")
	err := r.Register("  ", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool name is required")

	err = r.Register(DefaultStubTool, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tool "stub" is reserved`)

	_, err = r.Validate(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "missing"`)
}

func TestRegistry_Validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := NewRegistry("stubTool")
	require.NoError(t, r.Register("paragraph", RequireFields("text")))
	require.NoError(t, r.Register("delimiter", nil))

	ok, err := r.Validate(ctx, "paragraph", block.BlockData{"text": "hi"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Validate(ctx, "paragraph", block.BlockData{"text": "  "})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Validate(ctx, "delimiter", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Validate(ctx, "stubTool", block.BlockData{"anything": 1})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = r.Validate(ctx, "missing", nil)
	assert.Error(t, err)

	assert.Equal(t, []string{"delimiter", "paragraph"}, r.Names())
}
