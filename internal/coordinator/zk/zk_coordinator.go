package zk

import (
	"errors"
	"fmt"
	"strings"
	"time"

	coordinator "saludos/internal/coordinator/iface"
	"saludos/internal/logger"

	"github.com/go-zookeeper/zk"
)

type zkCoordinator struct {
	conn   *zk.Conn
	logger logger.Logger
}

// NewZKCoordinator creates a new ZooKeeper coordinator
func NewZKCoordinator(servers []string, sessionTimeout time.Duration, log logger.Logger) (coordinator.Coordinator, error) {
	conn, _, err := zk.Connect(servers, sessionTimeout, zk.WithLogInfo(false))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to zookeeper: %w", err)
	}

	log.Info("connected to zookeeper",
		logger.Any("servers", servers),
	)

	return &zkCoordinator{
		conn:   conn,
		logger: log.With(logger.String("component", "zk_coordinator")),
	}, nil
}

func (c *zkCoordinator) TryLock(path string, owner []byte) (func() error, error) {
	if err := c.ensureParentPath(path); err != nil {
		return nil, err
	}

	_, err := c.conn.Create(path, owner, zk.FlagEphemeral, zk.WorldACL(zk.PermAll))
	if errors.Is(err, zk.ErrNodeExists) {
		return nil, coordinator.ErrLockHeld
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create lock node: %w", err)
	}

	c.logger.Debug("lock acquired",
		logger.String("path", path),
	)

	release := func() error {
		err := c.conn.Delete(path, -1)
		if err != nil && !errors.Is(err, zk.ErrNoNode) {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		c.logger.Debug("lock released",
			logger.String("path", path),
		)
		return nil
	}

	return release, nil
}

func (c *zkCoordinator) GetNode(path string) ([]byte, error) {
	data, _, err := c.conn.Get(path)
	if errors.Is(err, zk.ErrNoNode) {
		return nil, fmt.Errorf("%w: %s", coordinator.ErrNodeNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get node %s: %w", path, err)
	}
	return data, nil
}

// UpdateNode overwrites the node's data, creating it and its parents if needed
func (c *zkCoordinator) UpdateNode(path string, data []byte) error {
	_, err := c.conn.Set(path, data, -1)
	if errors.Is(err, zk.ErrNoNode) {
		if err := c.ensureParentPath(path); err != nil {
			return err
		}
		_, err = c.conn.Create(path, data, 0, zk.WorldACL(zk.PermAll))
		if errors.Is(err, zk.ErrNodeExists) {
			// lost a create race; last writer wins
			_, err = c.conn.Set(path, data, -1)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write node %s: %w", path, err)
	}

	c.logger.Debug("zk node written", logger.String("path", path), logger.Int("bytes", len(data)))
	return nil
}

func (c *zkCoordinator) Close() error {
	c.logger.Info("closing zookeeper connection")
	c.conn.Close()
	return nil
}

// ensureParentPath creates every missing ancestor of path, top down
func (c *zkCoordinator) ensureParentPath(path string) error {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	current := ""
	for _, part := range parts[:len(parts)-1] {
		current += "/" + part
		_, err := c.conn.Create(current, nil, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("failed to create parent %s: %w", current, err)
		}
	}
	return nil
}
