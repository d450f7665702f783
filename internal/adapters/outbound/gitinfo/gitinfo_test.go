package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbiterhq/arbiter/internal/adapters/outbound/gitinfo"
)

func TestCommitHash(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "decision.json"), []byte("{}"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("decision.json")
	require.NoError(t, err)
	commit, err := wt.Commit("add decision document", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	hash, err := gitinfo.New().CommitHash(dir)
	require.NoError(t, err)
	assert.Equal(t, commit.String(), hash)

	// DetectDotGit walks up from nested directories.
	nested := filepath.Join(dir, "docs", "decisions")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	hash, err = gitinfo.New().CommitHash(nested)
	require.NoError(t, err)
	assert.Equal(t, commit.String(), hash)
}

func TestCommitHash_NotARepo(t *testing.T) {
	_, err := gitinfo.New().CommitHash(t.TempDir())
	assert.Error(t, err)
}
