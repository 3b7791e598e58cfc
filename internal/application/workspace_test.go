package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

// stubParser serves a fixed snippet and sample for workspace tests.
type stubParser struct {
	fakeParser
	snippet    string
	snippetErr error
	sample     string
}

func (p *stubParser) Snippet(*model.Problem, string) (string, error) {
	return p.snippet, p.snippetErr
}

func (p *stubParser) SampleInput(*model.Problem) (string, error) { return p.sample, nil }

func TestWorkspace_GenerateWritesStubOnce(t *testing.T) {
	dir := t.TempDir()
	store := newMemStore()
	ctx := context.Background()

	p := twoSum()
	require.NoError(t, store.Upsert(ctx, p))

	ws := NewWorkspace(WorkspaceConfig{
		Dir:          dir,
		Lang:         "golang",
		InjectBefore: []string{"package main"},
		InjectAfter:  []string{"// solution end"},
	}, &stubParser{snippet: "func twoSum(nums []int, target int) []int {\n}"}, store)

	path, err := ws.Generate(ctx, &p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1.two-sum.go"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "package main\n"))
	assert.Contains(t, string(content), "func twoSum")
	assert.Contains(t, string(content), "// solution end")

	// The file marker was recorded.
	stored, err := store.GetBySlug(ctx, "two-sum")
	require.NoError(t, err)
	assert.True(t, stored.HasFile)

	// A second generate leaves the existing file alone.
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0o644))
	again, err := ws.Generate(ctx, &p)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(content))
}

func TestWorkspace_GenerateWritesSampleTests(t *testing.T) {
	dir := t.TempDir()
	store := newMemStore()
	ctx := context.Background()

	p := twoSum()
	ws := NewWorkspace(WorkspaceConfig{
		Dir:        dir,
		Lang:       "golang",
		WriteTests: true,
	}, &stubParser{snippet: "func f() {}", sample: "[2,7,11,15]\n9"}, store)

	path, err := ws.Generate(ctx, &p)
	require.NoError(t, err)

	testPath := strings.TrimSuffix(path, ".go") + ".tests.dat"
	content, err := os.ReadFile(testPath)
	require.NoError(t, err)
	assert.Equal(t, "[2,7,11,15]\n9\n", string(content))
}

func TestWorkspace_GenerateCodeMarkers(t *testing.T) {
	dir := t.TempDir()
	p := twoSum()
	ws := NewWorkspace(WorkspaceConfig{
		Dir:         dir,
		Lang:        "python3",
		CodeMarkers: true,
	}, &stubParser{snippet: "class Solution: pass"}, newMemStore())

	path, err := ws.Generate(context.Background(), &p)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# ojcli code=start\nclass Solution: pass\n# ojcli code=end\n", string(content))
}

func TestWorkspace_UnsupportedLanguageLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	store := newMemStore()

	p := twoSum()
	ws := NewWorkspace(WorkspaceConfig{
		Dir:  dir,
		Lang: "golang",
	}, &stubParser{snippetErr: errors.New("no snippet")}, store)

	_, err := ws.Generate(context.Background(), &p)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkspace_UnknownLanguage(t *testing.T) {
	ws := NewWorkspace(WorkspaceConfig{
		Dir:  t.TempDir(),
		Lang: "cobol",
	}, &stubParser{}, newMemStore())

	p := twoSum()
	_, err := ws.CodePath(&p)
	assert.Error(t, err)
}
