package mnemonic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/prompt"
	"github.com/trufflesuite/vscode-ext-sub002/pkg/state"
)

const knownMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerateProducesValidMnemonic(t *testing.T) {
	m, err := Generate()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(m), 12)
	assert.NoError(t, Validate(m))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(knownMnemonic))
	assert.NoError(t, Validate("  abandon abandon abandon abandon abandon abandon\nabandon abandon abandon abandon abandon about "))
	assert.ErrorIs(t, Validate("abandon abandon"), ErrInvalid)
	assert.ErrorIs(t, Validate(""), ErrInvalid)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "aba ... out", Mask(knownMnemonic))
	assert.Equal(t, "short", Mask("short"))
}

func TestRepositoryHistoryIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(state.NewMemoryStore(), t.TempDir())

	paths, err := repo.Paths(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)

	require.NoError(t, repo.SavePath(ctx, "/a"))
	require.NoError(t, repo.SavePath(ctx, "/a"))
	paths, err = repo.Paths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/a"}, paths)
}

func TestRepositorySaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "mnemonics")
	repo := NewRepository(state.NewMemoryStore(), dir)

	path, err := repo.Save(ctx, knownMnemonic)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	m, err := repo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, knownMnemonic, m)

	require.NoError(t, repo.SavePath(ctx, filepath.Join(dir, "missing.env")))
	existing, err := repo.ExistingPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, existing)
}

func TestSelectorGenerate(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(state.NewMemoryStore(), t.TempDir())
	s := &Selector{Repo: repo, Prompter: prompt.NewScript(prompt.Answer{Index: 0})}

	sel, err := s.Select(ctx)
	require.NoError(t, err)
	require.NotNil(t, sel)
	assert.NoError(t, Validate(sel.Mnemonic))

	paths, err := repo.Paths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{sel.Path}, paths)
}

func TestSelectorPasteAndReuse(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(state.NewMemoryStore(), t.TempDir())

	script := prompt.NewScript(prompt.Answer{Index: 1}, prompt.Answer{Value: knownMnemonic})
	pasted, err := (&Selector{Repo: repo, Prompter: script}).Select(ctx)
	require.NoError(t, err)
	require.NotNil(t, pasted)
	assert.Equal(t, knownMnemonic, pasted.Mnemonic)

	script = prompt.NewScript(prompt.Answer{Index: 2})
	reused, err := (&Selector{Repo: repo, Prompter: script}).Select(ctx)
	require.NoError(t, err)
	require.NotNil(t, reused)
	assert.Equal(t, pasted.Path, reused.Path)
	assert.Equal(t, knownMnemonic, reused.Mnemonic)

	// reuse does not grow the history
	paths, err := repo.Paths(ctx)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestSelectorCancelled(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(state.NewMemoryStore(), t.TempDir())

	sel, err := (&Selector{Repo: repo, Prompter: prompt.NewScript(prompt.Answer{Cancel: true})}).Select(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sel)

	script := prompt.NewScript(prompt.Answer{Index: 1}, prompt.Answer{Cancel: true})
	sel, err = (&Selector{Repo: repo, Prompter: script}).Select(ctx)
	assert.NoError(t, err)
	assert.Nil(t, sel)

	paths, err := repo.Paths(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
