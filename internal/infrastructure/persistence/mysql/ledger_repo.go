package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/ledger"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// ledgerRepository 成交流水仓储实现(MySQL)
// 只增不改:只实现Append和查询
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建流水仓储
func NewLedgerRepository(db *gorm.DB) ledger.Repository {
	return &ledgerRepository{db: db}
}

// Append 追加一条流水
func (r *ledgerRepository) Append(ctx context.Context, e *ledger.Entry) error {
	model := toLedgerModel(e)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 交易号撞号概率极低,重新生成后由事务重试兜底
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "交易号重复")
		}
		return apperrors.Wrap(err, "写入流水失败")
	}

	e.ID = model.ID
	e.CreatedAt = model.CreatedAt

	return nil
}

// ListByBuyer 查询某买家的流水(分页)
func (r *ledgerRepository) ListByBuyer(ctx context.Context, buyerID uint, page, pageSize int) ([]*ledger.Entry, int64, error) {
	var models []LedgerEntryModel
	var total int64

	query := r.getDB(ctx).Model(&LedgerEntryModel{}).Where("buyer_id = ?", buyerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询流水总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询流水失败")
	}

	entries := make([]*ledger.Entry, len(models))
	for i := range models {
		entries[i] = toLedgerEntity(&models[i])
	}
	return entries, total, nil
}

// ListByProduct 查询某商品的全部流水(对账)
func (r *ledgerRepository) ListByProduct(ctx context.Context, productID uint) ([]*ledger.Entry, error) {
	var models []LedgerEntryModel
	err := r.getDB(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品流水失败")
	}

	entries := make([]*ledger.Entry, len(models))
	for i := range models {
		entries[i] = toLedgerEntity(&models[i])
	}
	return entries, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLedgerEntity GORM模型 → 领域实体
func toLedgerEntity(model *LedgerEntryModel) *ledger.Entry {
	return &ledger.Entry{
		ID:          model.ID,
		TradeNo:     model.TradeNo,
		BuyerID:     model.BuyerID,
		ProductID:   model.ProductID,
		ProductCode: model.ProductCode,
		Quantity:    model.Quantity,
		UnitPrice:   model.UnitPrice,
		TotalPrice:  model.TotalPrice,
		CreatedAt:   model.CreatedAt,
	}
}

// toLedgerModel 领域实体 → GORM模型
func toLedgerModel(e *ledger.Entry) *LedgerEntryModel {
	return &LedgerEntryModel{
		TradeNo:     e.TradeNo,
		BuyerID:     e.BuyerID,
		ProductID:   e.ProductID,
		ProductCode: e.ProductCode,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		TotalPrice:  e.TotalPrice,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *ledgerRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
