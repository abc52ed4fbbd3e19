package analytics

import (
	"go.uber.org/zap"

	"smokeysalmons/internal/usecase"
)

// Loggerは計測イベントを構造化ログとして記録する。
// 送信先を外部プロバイダに差し替えるときもTrackの形は変えない。
type Logger struct {
	logger *zap.SugaredLogger
}

func NewLogger(logger *zap.SugaredLogger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Track(event usecase.AnalyticsEvent) {
	switch e := event.(type) {
	case usecase.OrderPlacedEvent:
		l.logger.Infow("analytics",
			"event", e.EventName(),
			"order_id", e.OrderID,
			"code", e.Code,
			"total", e.Total.StringFixed(2),
			"items", e.Items,
		)
	case usecase.AddToCartEvent:
		l.logger.Infow("analytics",
			"event", e.EventName(),
			"key", e.Key,
			"name", e.Name,
			"flavor", e.Flavor,
			"qty", e.Qty,
			"price", e.Price.StringFixed(2),
		)
	default:
		l.logger.Infow("analytics", "event", event.EventName())
	}
}
