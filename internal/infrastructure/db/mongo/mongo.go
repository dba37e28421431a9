package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shortnote/note-system/internal/infrastructure/config"
)

// defaultTimeout bounds individual repository operations and doubles as the
// dial timeout when the configuration carries none.
const defaultTimeout = 10 * time.Second

// Connect dials the deployment named by MONGO_URI and pings it, so a bad
// address or unreachable cluster fails at startup instead of on the first
// user lookup. The returned client owns the connection pool; the database
// handle is scoped to cfg.Database and shared by both repositories.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
