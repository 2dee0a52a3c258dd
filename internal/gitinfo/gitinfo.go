// Package gitinfo reads project metadata from the enclosing git repository
// using go-git, so no git binary is required.
package gitinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote whose URL names the project.
const DefaultRemote = "origin"

// Repo is an opened repository.
type Repo struct {
	repo *git.Repository
	root string
}

// Open finds the repository containing dir, walking up to the directory
// holding .git. An empty dir means the working directory.
func Open(dir string) (*Repo, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	root := ""
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repo{repo: repo, root: root}, nil
}

// Root is the worktree root, or "" for a bare repository.
func (r *Repo) Root() string {
	return r.root
}

// RemoteURL returns the first URL of the named remote.
func (r *Repo) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL: %w", name, git.ErrRemoteNotFound)
	}
	return urls[0], nil
}

// ProjectName names the project after the origin remote's repository, or
// after the worktree directory when there is no usable remote.
func (r *Repo) ProjectName() string {
	if url, err := r.RemoteURL(DefaultRemote); err == nil {
		if name := RepoNameFromURL(url); name != "" {
			return name
		}
	}
	if r.root != "" {
		return filepath.Base(r.root)
	}
	return ""
}

// ProjectName opens the repository at dir and names its project. Outside a
// repository it falls back to the base name of dir itself.
func ProjectName(dir string) (string, error) {
	repo, err := Open(dir)
	if err == nil {
		if name := repo.ProjectName(); name != "" {
			return name, nil
		}
	} else if !errors.Is(err, git.ErrRepositoryNotExists) {
		return "", err
	}

	if dir == "" {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return "", fmt.Errorf("getting current directory: %w", wdErr)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return filepath.Base(abs), nil
}

// RepoNameFromURL extracts the repository name from a clone URL in https,
// ssh, scp-like or local path form.
func RepoNameFromURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	url = strings.TrimSuffix(url, ".git")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return url
}
