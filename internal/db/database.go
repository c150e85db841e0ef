package db

import (
	"fmt"
	"time"

	"github.com/ikkim/camping-backend/config"
	appLogger "github.com/ikkim/camping-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 서버/배치 명령이 공유하는 커넥션. Initialize 전에는 nil.
var DB *gorm.DB

// NowUTC gorm 타임스탬프 기준 시각. 인기 게시글 기간(created_at >= now-window)을
// UTC로 비교하므로 저장 시각도 UTC로 맞춘다.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// gormConfig 운영/테스트 공통 설정. SQL 로그는 끄고 요청 로그는 미들웨어가 남긴다.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: NowUTC,
	}
}

// Initialize PostgreSQL에 접속하고 풀 설정을 적용한다
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to camping database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
		"sslmode":  cfg.SSLMode,
	})

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig())
	if err != nil {
		return fmt.Errorf("open camping database: %w", err)
	}
	if err := applyPool(conn, cfg); err != nil {
		return err
	}

	DB = conn
	appLogger.Info("Camping database ready", map[string]interface{}{
		"max_idle_conns":    cfg.MaxIdleConns,
		"max_open_conns":    cfg.MaxOpenConns,
		"conn_max_lifetime": cfg.ConnMaxLifetime.String(),
	})
	return nil
}

// applyPool 0 이하 값은 database/sql 기본값을 그대로 둔다
func applyPool(conn *gorm.DB, cfg *config.DatabaseConfig) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

// Close 종료 시 호출. Initialize 전이면 아무것도 하지 않는다.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return DB
}
