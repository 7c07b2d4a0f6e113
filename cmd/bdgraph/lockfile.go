package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// acquireSnapshotLock writes a <path>.lock sidecar file holding a fresh
// uuid next to path, and refuses if one already exists, so a
// concurrent second build/validate invocation against the same snapshot is
// detected and refused, since the library itself has no concurrent-
// mutation story (spec §5 Non-goals) and two drivers racing to write the
// same file would corrupt it.
func acquireSnapshotLock(path string) (release func(), err error) {
	lockPath := path + ".lock"
	if _, err := os.Stat(lockPath); err == nil {
		return nil, fmt.Errorf("snapshot %s is locked by another invocation (%s exists)", path, lockPath)
	}
	token := uuid.New().String()
	if err := os.WriteFile(lockPath, []byte(token), 0o644); err != nil {
		return nil, fmt.Errorf("create lock file %s: %w", lockPath, err)
	}
	return func() { os.Remove(lockPath) }, nil
}
