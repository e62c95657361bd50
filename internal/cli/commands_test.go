package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotJSON = `{
  "blocks": [
    {"id": "a", "type": "paragraph", "data": {"text": "  hi  "}},
    {"id": "b", "type": "paragraph", "data": null},
    {"id": "c", "type": "paragraph", "data": {"text": ""}},
    {"id": "d", "type": "warning", "data": {"title": "careful"}},
    {"id": "e", "type": "header", "data": {"text": "H", "level": 2}, "tunes": {"anchor": "top"}}
  ]
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSaveCommand_WritesDocument(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	input := writeFile(t, dir, "blocks.json", snapshotJSON)
	cfg := writeFile(t, dir, "blocksaver.yaml", `
version: "9.9.9"
max_workers: 2
sanitize:
  trim_space: true
log:
  level: error
`)
	output := filepath.Join(dir, "out.json")

	root := NewRootCommand()
	root.SetArgs([]string{"save", "--input", input, "--config", cfg, "--output", output})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc struct {
		Time    int64            `json:"time"`
		Version string           `json:"version"`
		Blocks  []map[string]any `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "9.9.9", doc.Version)
	assert.Positive(t, doc.Time)

	blocks, err := json.Marshal(doc.Blocks)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"paragraph","data":{"text":"hi"}},
		{"id":"d","type":"warning","data":{"title":"careful"}},
		{"type":"header","data":{"text":"H","level":2},"tunes":{"anchor":"top"}}
	]`, string(blocks))
}

func TestSaveCommand_Stdin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := writeFile(t, dir, "blocksaver.yaml", "log:\n  level: error\n")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(`{"blocks":[{"type":"delimiter","data":{}}]}`))
	root.SetOut(&out)
	root.SetArgs([]string{"save", "-i", "-", "-c", cfg, "-w", "1"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), `"blocks":[{"type":"delimiter","data":{}}]`)
}

func TestSaveCommand_BadSnapshot(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := writeFile(t, dir, "broken.json", `{"blocks": [`)

	root := NewRootCommand()
	root.SetArgs([]string{"save", "-i", input})
	assert.Error(t, root.Execute())
}

func TestSaveCommand_RequiresInput(t *testing.T) {
	t.Parallel()

	root := NewRootCommand()
	root.SetArgs([]string{"save"})
	assert.Error(t, root.Execute())
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "blocksaver "))
}
