package ports

import (
	"context"
	"iter"
)

// Watcher reports changes to declaration files.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the declarations in dir and the env file at envFile.
	// An empty envFile is not watched. Watching ends when ctx is cancelled or
	// Stop is called.
	Start(ctx context.Context, dir, envFile string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Changes yields the changed paths of each settled burst of edits,
	// until watching ends.
	Changes() iter.Seq[[]string]
}
