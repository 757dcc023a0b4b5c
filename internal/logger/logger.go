package logger

import (
	"context"

	"pocket-crm/internal/config"
	"pocket-crm/internal/database"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build creates the console logger and tees warn-and-above into store.
func Build(cfg *config.Config, store LogStore) (*zap.Logger, *DBLogWriter, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, nil, err
	}

	dbWriter := NewDBLogWriter(store, cfg.AppId, 1000)
	finalCore := NewDBCore(baseLogger.Core(), dbWriter, zapcore.WarnLevel)

	return zap.New(finalCore, zap.AddCaller()), dbWriter, nil
}

// NewLogger is the fx provider; the DB writer is drained on shutdown.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	log, writer, err := Build(cfg, NewMongoLogStore(mongodb))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			writer.Close()
			return nil
		},
	})

	return log, nil
}
