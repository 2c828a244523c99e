package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// inventoryRepository 卖家库存仓储实现(MySQL)
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建卖家库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// Create 创建库存条目(首次购入)
// (seller, product)唯一索引兜底:并发首购时第二个事务命中重复键,
// 由事务管理器按冲突重试,重试后走Lock+Update分支
func (r *inventoryRepository) Create(ctx context.Context, e *inventory.Entry) error {
	model := toInventoryModel(e)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "库存记录已存在")
		}
		return apperrors.Wrap(err, "创建库存记录失败")
	}

	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt

	return nil
}

// LockBySellerAndProduct 悲观锁查询(seller, product)条目
func (r *inventoryRepository) LockBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*inventory.Entry, error) {
	var model InventoryEntryModel
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// Update 回写库存条目
func (r *inventoryRepository) Update(ctx context.Context, e *inventory.Entry) error {
	model := toInventoryModel(e)
	model.ID = e.ID
	model.CreatedAt = e.CreatedAt

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新库存记录失败")
	}

	e.UpdatedAt = model.UpdatedAt
	return nil
}

// FindBySellerAndProduct 查询单个条目(不加锁)
func (r *inventoryRepository) FindBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*inventory.Entry, error) {
	var model InventoryEntryModel
	err := r.getDB(ctx).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}

	return toInventoryEntity(&model), nil
}

// ListBySeller 查询某卖家的全部库存
func (r *inventoryRepository) ListBySeller(ctx context.Context, sellerID uint) ([]*inventory.Entry, error) {
	var models []InventoryEntryModel
	err := r.getDB(ctx).
		Where("seller_id = ?", sellerID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询卖家库存失败")
	}

	entries := make([]*inventory.Entry, len(models))
	for i := range models {
		entries[i] = toInventoryEntity(&models[i])
	}
	return entries, nil
}

// ListByProduct 查询某商品在所有卖家手中的库存(守恒审计)
func (r *inventoryRepository) ListByProduct(ctx context.Context, productID uint) ([]*inventory.Entry, error) {
	var models []InventoryEntryModel
	err := r.getDB(ctx).
		Where("product_id = ?", productID).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品库存分布失败")
	}

	entries := make([]*inventory.Entry, len(models))
	for i := range models {
		entries[i] = toInventoryEntity(&models[i])
	}
	return entries, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toInventoryEntity GORM模型 → 领域实体
func toInventoryEntity(model *InventoryEntryModel) *inventory.Entry {
	return &inventory.Entry{
		ID:          model.ID,
		SellerID:    model.SellerID,
		ProductID:   model.ProductID,
		Quantity:    model.Quantity,
		UnitCost:    model.UnitCost,
		Name:        model.Name,
		Description: model.Description,
		ImageURL:    model.ImageURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// toInventoryModel 领域实体 → GORM模型
func toInventoryModel(e *inventory.Entry) *InventoryEntryModel {
	return &InventoryEntryModel{
		ID:          e.ID,
		SellerID:    e.SellerID,
		ProductID:   e.ProductID,
		Quantity:    e.Quantity,
		UnitCost:    e.UnitCost,
		Name:        e.Name,
		Description: e.Description,
		ImageURL:    e.ImageURL,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *inventoryRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
