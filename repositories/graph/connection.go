package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spacebio/articles-api/config"
	"go.uber.org/zap"
)

// DB wraps the Neo4j driver and owns its lifecycle. Sessions are scoped to a
// single repository call and always closed on exit, so the driver itself is
// the only long-lived resource.
type DB struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewDB connects to Neo4j and verifies connectivity before returning.
func NewDB(ctx context.Context, cfg config.Neo4jConfig, logger *zap.Logger) (*DB, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to reach neo4j: %w", err)
	}

	logger.Info("graph database connection established",
		zap.String("uri", cfg.URI),
		zap.String("database", cfg.Database))

	return &DB{
		driver:   driver,
		database: cfg.Database,
		logger:   logger,
	}, nil
}

// Close releases the underlying driver and all pooled connections.
func (db *DB) Close(ctx context.Context) error {
	db.logger.Info("closing graph database connection")
	return db.driver.Close(ctx)
}

// HealthCheck verifies the database is reachable.
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph database health check failed: %w", err)
	}
	return nil
}

// readSession opens a read-mode session against the configured database.
// Callers must close it before returning.
func (db *DB) readSession(ctx context.Context) neo4j.SessionWithContext {
	return db.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: db.database,
		AccessMode:   neo4j.AccessModeRead,
	})
}
