package git

import (
	"context"
	"fmt"
)

// MockStore is a test double for Store. It serves predefined raw output
// without needing a real Git repository.
type MockStore struct {
	// Revisions maps a revision expression to its canonical identifier.
	Revisions map[string]string
	// Patches maps a canonical identifier to raw "git show" output.
	Patches map[string]string
	// Blames maps "rev path" to raw "git blame" output.
	Blames map[string]string
}

// ResolveRevision returns the predefined canonical identifier for expr.
func (m *MockStore) ResolveRevision(_ context.Context, expr string) (string, error) {
	id, ok := m.Revisions[expr]
	if !ok {
		return "", fmt.Errorf("resolve revision %q: unknown revision", expr)
	}
	return id, nil
}

// ShowPatch returns the predefined patch text for id.
func (m *MockStore) ShowPatch(_ context.Context, id string) (string, error) {
	raw, ok := m.Patches[id]
	if !ok {
		return "", fmt.Errorf("git show failed: no such revision %s", id)
	}
	return raw, nil
}

// BlameFile returns the predefined blame text for (rev, path).
func (m *MockStore) BlameFile(_ context.Context, path, rev string) (string, error) {
	raw, ok := m.Blames[rev+" "+path]
	if !ok {
		return "", fmt.Errorf("git blame failed: no blame for %s at %s", path, rev)
	}
	return raw, nil
}
