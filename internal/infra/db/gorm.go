package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/domain/model"
)

// ConnectはDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
}

// Migrateはスキーマを追従させる
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.Product{},
		&model.Flavor{},
		&model.Promotion{},
		&model.Order{},
		&model.OrderItem{},
		&model.AdminUser{},
	)
}
