package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.GitInfo using go-git. It walks up from the given
// directory, so a document anywhere inside a repository resolves to that
// repository's HEAD.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) CommitHash(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
