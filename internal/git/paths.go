package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RelToRoot re-expresses an operator-supplied path, interpreted relative to
// cwd, as a slash-separated path relative to the worktree root. Paths in
// patch and blame output use this form.
func RelToRoot(root, cwd, path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, path)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the worktree %s", path, root)
	}

	return filepath.ToSlash(rel), nil
}
