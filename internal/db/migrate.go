package db

import (
	"github.com/ikkim/camping-backend/internal/app/model"
	"github.com/ikkim/camping-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models 마이그레이션 대상 모델 (의존 순서)
func Models() []interface{} {
	return []interface{}{
		&model.Member{},
		&model.Board{},
		&model.BoardLike{},
		&model.Comment{},
		&model.Review{},
		&model.ReviewAggregate{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs AutoMigrate against the given connection
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
