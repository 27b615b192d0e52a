package db

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bulkdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	pricewatchdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
	recoverydomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	sharedomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

// Open connects to the sqlite database configured for the service.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	log.Named("db").Info("database opened", zap.String("dsn", cfg.DatabaseDSN))
	return conn, nil
}

// Migrate creates or updates the service tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&snapshotdomain.CartSnapshot{},
		&sharedomain.ShareGrant{},
		&bulkdomain.BulkOperation{},
		&pricewatchdomain.PriceWatch{},
		&recoverydomain.AbandonmentRecord{},
	)
}

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(Migrate),
)
