package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"smokeysalmons/internal/domain/model"
	repo "smokeysalmons/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindByCode(ctx context.Context, code string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	//外側のトランザクション内から呼ばれるので、INSERTはSAVEPOINTで囲む。
	//こうしないと一意制約違反がトランザクション全体をabortさせてしまい（25P02）、
	//コードを引き直しても次のINSERTが通らない。
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		//注文コードの衝突はErrDuplicateにして呼び出し側でリトライさせる
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *OrderGormRepository) UpdateStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderGormRepository) UpdatePaymentStatusIf(ctx context.Context, orderID string, from, to model.PaymentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Update("payment_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderGormRepository) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_expires_at IS NOT NULL AND payment_expires_at < ?", now).
		Where("payment_status IN ?", []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusUnpaid}).
		Where("status IN ?", []model.OrderStatus{model.OrderStatusPending, model.OrderStatusConfirmed}).
		Update("status", model.OrderStatusCancelled)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.From != nil {
		q = q.Where("placed_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("placed_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("placed_at desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var items []model.Order
	if err := r.db.WithContext(ctx).Order("placed_at desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
