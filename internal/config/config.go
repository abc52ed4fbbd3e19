package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

// Configはアプリ全体の設定。起動時に一度だけ読み込んで、以後は変更しない。
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// DATABASE_URL があれば最優先で使う
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"smokeysalmons"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	JWTSecret string `env:"JWT_SECRET"`

	BrandName string `env:"BRAND_NAME" envDefault:"Smokey Salmons"`

	EmailFrom  string `env:"EMAIL_FROM" envDefault:"orders@localhost"`
	AdminEmail string `env:"ADMIN_EMAIL"`
	SMTPAddr   string `env:"SMTP_ADDR"`

	// 管理者の初期シード（空なら作らない）
	AdminPassword string `env:"ADMIN_PASSWORD"`

	BitPhone    string `env:"BIT_PHONE"`
	PayboxPhone string `env:"PAYBOX_PHONE"`

	DeliveryFee           int64  `env:"DELIVERY_FEE" envDefault:"20"`
	DeliveryCity          string `env:"DELIVERY_CITY" envDefault:"Yad Binyamin"`
	PaymentTimeoutMinutes int    `env:"PAYMENT_TIMEOUT_MINUTES" envDefault:"60"`

	// 紛らわしい文字（0/O, 1/I）を除いた32文字
	OrderCodeAlphabet string `env:"ORDER_CODE_ALPHABET" envDefault:"ABCDEFGHJKLMNPQRSTUVWXYZ23456789"`
	OrderCodeLength   int    `env:"ORDER_CODE_LENGTH" envDefault:"6"`

	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DeliveryFee < 0 {
		return Config{}, fmt.Errorf("DELIVERY_FEE must not be negative")
	}
	if cfg.PaymentTimeoutMinutes <= 0 {
		return Config{}, fmt.Errorf("PAYMENT_TIMEOUT_MINUTES must be positive")
	}
	if len(cfg.OrderCodeAlphabet) < 2 {
		return Config{}, fmt.Errorf("ORDER_CODE_ALPHABET is too short")
	}
	if cfg.OrderCodeLength <= 0 {
		return Config{}, fmt.Errorf("ORDER_CODE_LENGTH must be positive")
	}

	return cfg, nil
}

// DSNはPostgres接続文字列を組み立てる
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// DeliveryFeeAmountは配達料を通貨額として返す
func (c Config) DeliveryFeeAmount() decimal.Decimal {
	return decimal.NewFromInt(c.DeliveryFee)
}

// PaymentTimeoutはBIT/PAYBOXの支払い期限
func (c Config) PaymentTimeout() time.Duration {
	return time.Duration(c.PaymentTimeoutMinutes) * time.Minute
}
