package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CLIStore reads revision data from a local repository. Patch and blame
// queries shell out to the git binary, since the tool's parsers consume
// git's textual output directly; revision resolution goes through go-git.
type CLIStore struct {
	root string
	repo *gogit.Repository
}

// OpenStore opens the repository containing dir (searching parent
// directories for the .git directory, like git itself).
func OpenStore(dir string) (*CLIStore, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository at %s has no worktree: %w", dir, err)
	}

	return &CLIStore{root: w.Filesystem.Root(), repo: repo}, nil
}

// Root returns the absolute path of the worktree root. All file paths in
// patch and blame output are relative to it.
func (s *CLIStore) Root() string {
	return s.root
}

// ResolveRevision resolves expr (a symbolic name, abbreviated hash, or a
// suffixed form such as "abc123^") to a canonical identifier.
func (s *CLIStore) ResolveRevision(_ context.Context, expr string) (string, error) {
	h, err := s.repo.ResolveRevision(plumbing.Revision(expr))
	if err != nil {
		return "", fmt.Errorf("resolve revision %q: %w", expr, err)
	}
	return h.String(), nil
}

// ShowPatch runs "git show" for the given canonical identifier.
func (s *CLIStore) ShowPatch(ctx context.Context, id string) (string, error) {
	return s.run(ctx, "show", "--no-color", id)
}

// BlameFile runs "git blame -slfn" for the given file. An empty rev blames
// the working state.
func (s *CLIStore) BlameFile(ctx context.Context, path, rev string) (string, error) {
	args := []string{"blame", "-slfn"}
	if rev != "" {
		args = append(args, rev)
	}
	args = append(args, "--", path)
	return s.run(ctx, args...)
}

func (s *CLIStore) run(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-C", s.root}, args...)
	out, err := exec.CommandContext(ctx, "git", full...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
