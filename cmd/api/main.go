package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/handler"
	"smokeysalmons/internal/infra/analytics"
	"smokeysalmons/internal/infra/db"
	"smokeysalmons/internal/infra/notify"
	infraRepo "smokeysalmons/internal/infra/repository"
	"smokeysalmons/internal/server"
	"smokeysalmons/internal/shortcode"
	"smokeysalmons/internal/usecase"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(adminID string, email string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   adminID,
		"email": email,
		"role":  "ADMIN",
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数だけで動かす）
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		sugar.Fatalw("database connection error", "error", err.Error())
	}
	if err := db.Migrate(gormDB); err != nil {
		sugar.Fatalw("migration error", "error", err.Error())
	}
	if err := db.Seed(context.Background(), gormDB, cfg); err != nil {
		sugar.Fatalw("seed error", "error", err.Error())
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	flavorRepo := infraRepo.NewFlavorGormRepository(gormDB)
	promotionRepo := infraRepo.NewPromotionGormRepository(gormDB)
	adminUserRepo := infraRepo.NewAdminUserGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	codeGen := shortcode.NewGenerator(cfg.OrderCodeAlphabet, cfg.OrderCodeLength)

	var notifier usecase.Notifier
	if cfg.SMTPAddr != "" {
		notifier = notify.NewSMTPNotifier(cfg.SMTPAddr, cfg.EmailFrom, cfg.BrandName)
	} else {
		notifier = notify.NewLogNotifier(sugar, cfg.BrandName)
	}
	tracker := analytics.NewLogger(sugar)

	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager, notifier, tracker, sugar, clock, idGen, codeGen, cfg)
	cartUC := usecase.NewCartUsecase(productRepo)
	productUC := usecase.NewProductUsecase(productRepo, flavorRepo)
	promotionUC := usecase.NewPromotionUsecase(promotionRepo, clock, idGen)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, notifier, sugar, clock)
	authUC := usecase.NewAuthUsecase(adminUserRepo, usecase.NewBcryptPasswordVerifier(), issuer, clock)

	//Handler生成とルーティング
	e := server.New(cfg, server.Handlers{
		Health:         handler.NewHealthHandler(gormDB),
		SiteConfig:     handler.NewSiteConfigHandler(cfg),
		Product:        handler.NewProductHandler(productUC),
		Cart:           handler.NewCartHandler(cartUC),
		Order:          handler.NewOrderHandler(orderUC),
		Promotion:      handler.NewPromotionHandler(promotionUC),
		Analytics:      handler.NewAnalyticsHandler(tracker),
		Auth:           handler.NewAuthHandler(authUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminPromotion: handler.NewAdminPromotionHandler(promotionUC),
	})

	addr := ":" + cfg.Port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	//支払い期限切れの定期スイープ
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if _, err := adminOrderUC.ExpirePayments(ctx); err != nil {
					sugar.Errorw("payment sweep failed", "error", err)
				}
			}
		}
	})

	//HTTPサーバー起動
	g.Go(func() error {
		sugar.Infow("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	//Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
