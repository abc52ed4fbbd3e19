package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"smokeysalmons/internal/domain/model"
	repo "smokeysalmons/internal/repository"
)

type AdminOrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	notifier Notifier
	logger   *zap.SugaredLogger
	clock    Clock
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	notifier Notifier,
	logger *zap.SugaredLogger,
	clock Clock,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, notifier: notifier, logger: logger, clock: clock}
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	if f.Page < 1 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.ValidOrderStatus(f.Status) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if f.PaymentStatus != "" && !model.ValidPaymentStatus(f.PaymentStatus) {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			items = append(items, toOrderOutput(o, lines))
		}

		out = AdminOrderListOutput{Items: items, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})
	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// UpdateStatusはフルフィルメントの状態遷移。進行方向のみ許可し、
// 並行更新に負けた場合は409を返す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminID string, orderID string, newStatus string) error {
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidOrderStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	next := model.OrderStatus(newStatus)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じ状態なら何もしない（200）
		if o.Status == next {
			return nil
		}
		if !o.Status.CanTransition(next) {
			return NewHTTPError(http.StatusBadRequest, "illegal status transition")
		}

		ok, err := r.Orders().UpdateStatusIf(ctx, orderID, o.Status, next)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			//読み取りから更新までの間に他の遷移が入った
			return NewHTTPError(http.StatusConflict, "status changed concurrently")
		}

		u.logger.Infow("order status updated",
			"admin", adminID,
			"order", orderID,
			"from", string(o.Status),
			"to", string(next),
		)
		return nil
	})
	return err
}

// UpdatePaymentStatusは支払い状態の遷移。PAIDへの遷移だけ確認メールを送る。
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, adminID string, orderID string, newStatus string) error {
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidPaymentStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}
	next := model.PaymentStatus(newStatus)

	var updated model.Order
	notify := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.PaymentStatus == next {
			return nil
		}
		if !o.PaymentStatus.CanTransition(next) {
			return NewHTTPError(http.StatusBadRequest, "illegal payment status transition")
		}

		ok, err := r.Orders().UpdatePaymentStatusIf(ctx, orderID, o.PaymentStatus, next)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return NewHTTPError(http.StatusConflict, "payment status changed concurrently")
		}

		u.logger.Infow("payment status updated",
			"admin", adminID,
			"order", orderID,
			"from", string(o.PaymentStatus),
			"to", string(next),
		)

		updated = o
		notify = next == model.PaymentStatusPaid
		return nil
	})
	if err != nil {
		return err
	}

	//PAIDのときだけ、メールがあれば確認通知（失敗しても遷移は確定済み）
	if notify && updated.ContactEmail != nil && *updated.ContactEmail != "" {
		n := OrderNotification{
			To:        *updated.ContactEmail,
			OrderCode: updated.Code,
			Customer:  updated.ContactName,
			Phone:     updated.ContactPhone,
			Total:     updated.Total,
			Method:    string(updated.PaymentMethod),
		}
		if err := u.notifier.SendPaymentConfirmation(ctx, n); err != nil {
			u.logger.Errorw("payment confirmation send failed", "code", updated.Code, "error", err)
		}
	}

	return nil
}

// ExpirePaymentsは支払い期限切れの注文を一括キャンセルして件数を返す。
// 冪等：対象が無ければ0件。
func (u *AdminOrderUsecase) ExpirePayments(ctx context.Context) (int64, error) {
	now := u.clock.Now()
	count, err := u.orders.CancelExpired(ctx, now)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if count > 0 {
		u.logger.Infow("expired payments swept", "cancelled", count)
	}
	return count, nil
}

var csvHeader = []string{
	"placedAt", "code", "status", "contactName", "contactPhone", "contactEmail",
	"city", "street", "apt", "deliverySlot", "total", "items",
}

// ExportCSVは全注文をplacedAt降順で書き出す
func (u *AdminOrderUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "csv write failed")
		}

		for _, o := range orders {
			lines, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			row := []string{
				o.PlacedAt.UTC().Format(time.RFC3339),
				o.Code,
				string(o.Status),
				o.ContactName,
				o.ContactPhone,
				strOrEmpty(o.ContactEmail),
				strOrEmpty(o.City),
				strOrEmpty(o.Street),
				strOrEmpty(o.Apt),
				strOrEmpty(o.DeliverySlot),
				o.Total.StringFixed(2),
				strings.Join(summaryLines(lines), "; "),
			}
			if err := cw.Write(row); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "csv write failed")
			}
		}

		cw.Flush()
		if err := cw.Error(); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "csv write failed")
		}
		return nil
	})
	return err
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
