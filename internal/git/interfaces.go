package git

import "context"

// Store defines the interface for querying the revision store. Methods
// return the raw textual git output; parsing lives in the changeset and
// annotate packages. This abstraction allows for easier testing and
// potential alternative implementations.
type Store interface {
	// ResolveRevision resolves a symbolic or abbreviated revision reference
	// to its canonical identifier.
	ResolveRevision(ctx context.Context, expr string) (string, error)

	// ShowPatch returns the raw patch text of one revision, as printed by
	// "git show".
	ShowPatch(ctx context.Context, id string) (string, error)

	// BlameFile returns the raw per-line attribution of one file at the
	// given revision, or at the working state when rev is empty.
	BlameFile(ctx context.Context, path, rev string) (string, error)
}

// Compile-time interface conformance checks.
var (
	_ Store = (*CLIStore)(nil)
	_ Store = (*MockStore)(nil)
)
