package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// listingRepository 挂牌仓储实现(MySQL)
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository 创建挂牌仓储
func NewListingRepository(db *gorm.DB) listing.Repository {
	return &listingRepository{db: db}
}

// Create 创建挂牌
func (r *listingRepository) Create(ctx context.Context, l *listing.Listing) error {
	model := toListingModel(l)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "挂牌已存在")
		}
		return apperrors.Wrap(err, "创建挂牌失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// LockByID 悲观锁按ID查询
// 删除/更新挂牌的权限校验必须基于这里锁定后的记录
func (r *listingRepository) LockByID(ctx context.Context, id uint) (*listing.Listing, error) {
	var model ListingModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrListingNotFound
		}
		return nil, apperrors.Wrap(err, "锁定挂牌失败")
	}

	return toListingEntity(&model), nil
}

// LockBySellerAndProduct 悲观锁按(seller, product)查询(挂牌合并)
func (r *listingRepository) LockBySellerAndProduct(ctx context.Context, sellerID, productID uint) (*listing.Listing, error) {
	var model ListingModel
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrListingNotFound
		}
		return nil, apperrors.Wrap(err, "锁定挂牌失败")
	}

	return toListingEntity(&model), nil
}

// Update 回写挂牌
func (r *listingRepository) Update(ctx context.Context, l *listing.Listing) error {
	model := toListingModel(l)
	model.ID = l.ID
	model.CreatedAt = l.CreatedAt

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新挂牌失败")
	}

	l.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除挂牌(物理删除)
func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&ListingModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除挂牌失败")
	}

	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

// ListBySeller 查询某卖家的全部挂牌
func (r *listingRepository) ListBySeller(ctx context.Context, sellerID uint) ([]*listing.Listing, error) {
	var models []ListingModel
	err := r.getDB(ctx).
		Where("seller_id = ?", sellerID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询卖家挂牌失败")
	}

	listings := make([]*listing.Listing, len(models))
	for i := range models {
		listings[i] = toListingEntity(&models[i])
	}
	return listings, nil
}

// ListByProduct 查询某商品的全部挂牌(守恒审计)
func (r *listingRepository) ListByProduct(ctx context.Context, productID uint) ([]*listing.Listing, error) {
	var models []ListingModel
	err := r.getDB(ctx).
		Where("product_id = ?", productID).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品挂牌失败")
	}

	listings := make([]*listing.Listing, len(models))
	for i := range models {
		listings[i] = toListingEntity(&models[i])
	}
	return listings, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toListingEntity GORM模型 → 领域实体
func toListingEntity(model *ListingModel) *listing.Listing {
	return &listing.Listing{
		ID:          model.ID,
		SellerID:    model.SellerID,
		ProductID:   model.ProductID,
		Quantity:    model.Quantity,
		Price:       model.Price,
		Name:        model.Name,
		Description: model.Description,
		ImageURL:    model.ImageURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// toListingModel 领域实体 → GORM模型
func toListingModel(l *listing.Listing) *ListingModel {
	return &ListingModel{
		ID:          l.ID,
		SellerID:    l.SellerID,
		ProductID:   l.ProductID,
		Quantity:    l.Quantity,
		Price:       l.Price,
		Name:        l.Name,
		Description: l.Description,
		ImageURL:    l.ImageURL,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *listingRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
