// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/campushub/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("MongoDB ping failed", zap.Error(err))
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		CampusHubMongoClient:   client,
		CampusHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema reconciles the index sets every collection depends on. The
// unique (posting_id, user_id) index on form_responses is load-bearing: form
// submission correctness relies on it existing before the app serves traffic.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.CampusHubMongoDatabase)
}
