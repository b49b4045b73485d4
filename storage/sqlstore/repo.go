package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"license-hub/types"
)

var ErrNotFound = errors.New("record not found")

// AgreementRepo 封装对 agreements 表的所有操作
type AgreementRepo struct {
	db *gorm.DB
}

// NewAgreementRepo 构造函数
func NewAgreementRepo(db *gorm.DB) *AgreementRepo {
	return &AgreementRepo{db: db}
}

// Create 新增协议或修订记录，成功后回填 ID
func (r *AgreementRepo) Create(ctx context.Context, agreement *Agreement) error {
	return r.db.WithContext(ctx).Create(agreement).Error
}

// GetByID 根据主键查询
func (r *AgreementRepo) GetByID(ctx context.Context, id uint) (*Agreement, error) {
	var agreement Agreement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&agreement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

// List 列出全部记录；keyword 非空时按标题/品牌/授权方/国家模糊匹配
func (r *AgreementRepo) List(ctx context.Context, keyword string) ([]Agreement, error) {
	var results []Agreement
	tx := r.db.WithContext(ctx).Order("id")
	if keyword != "" {
		pattern := "%" + keyword + "%"
		tx = tx.Where("title LIKE ? OR brand LIKE ? OR licenser LIKE ? OR country LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	err := tx.Find(&results).Error
	return results, err
}

// ListBase 可作为修订基准的记录 (obsolete = false)
func (r *AgreementRepo) ListBase(ctx context.Context) ([]Agreement, error) {
	var results []Agreement
	err := r.db.WithContext(ctx).
		Select("id", "title", "summary", "obsolete").
		Where("obsolete = ?", false).
		Order("id").
		Find(&results).Error
	return results, err
}

// UpdateStatus 只修改 status 一列，不触发 hook
func (r *AgreementRepo) UpdateStatus(ctx context.Context, id uint, status types.Status) error {
	result := r.db.WithContext(ctx).
		Model(&Agreement{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExpiring 生效中且有截止日期的记录，供到期提醒使用
func (r *AgreementRepo) ListExpiring(ctx context.Context) ([]Agreement, error) {
	var results []Agreement
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date IS NOT NULL", types.StatusActive).
		Order("id").
		Find(&results).Error
	return results, err
}

// ExpireAgreements 用于定时任务批量更新过期状态
func (r *AgreementRepo) ExpireAgreements(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Agreement{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", types.StatusActive, types.DateOnly(today)).
		UpdateColumn("status", types.StatusExpired)
	return result.RowsAffected, result.Error
}
