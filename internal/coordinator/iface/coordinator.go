package coordinator

import "errors"

var (
	// ErrLockHeld is returned by TryLock when another process owns the lock
	ErrLockHeld = errors.New("lock held by another process")
	// ErrNodeNotFound is returned by GetNode for a missing path
	ErrNodeNotFound = errors.New("node not found")
)

// Coordinator defines ZooKeeper operations for distributed coordination
type Coordinator interface {
	// TryLock creates an ephemeral node at path. It fails with ErrLockHeld
	// when the node exists. The lock is released by the returned func or
	// when the session ends.
	TryLock(path string, owner []byte) (release func() error, err error)
	GetNode(path string) ([]byte, error)
	UpdateNode(path string, data []byte) error
	Close() error
}
