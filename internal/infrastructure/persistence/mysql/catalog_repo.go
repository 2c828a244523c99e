package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// catalogRepository 平台商品仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/catalog/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如编码重复),转换为业务错误
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品仓储
func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// Create 创建商品条目
func (r *catalogRepository) Create(ctx context.Context, e *catalog.Entry) error {
	model := toCatalogModel(e)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrProductCodeDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 回填自增ID
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *catalogRepository) FindByID(ctx context.Context, id uint) (*catalog.Entry, error) {
	var model CatalogEntryModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toCatalogEntity(&model), nil
}

// FindByCode 根据商品编码查找
func (r *catalogRepository) FindByCode(ctx context.Context, productCode string) (*catalog.Entry, error) {
	var model CatalogEntryModel
	err := r.getDB(ctx).Where("product_code = ?", productCode).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toCatalogEntity(&model), nil
}

// LockByID 悲观锁查询商品(购买时锁定库存行)
// SELECT * FROM catalog_entries WHERE id = ? FOR UPDATE
func (r *catalogRepository) LockByID(ctx context.Context, id uint) (*catalog.Entry, error) {
	var model CatalogEntryModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "锁定商品失败")
	}

	return toCatalogEntity(&model), nil
}

// LockByCode 悲观锁按编码查询(补货合并)
func (r *catalogRepository) LockByCode(ctx context.Context, productCode string) (*catalog.Entry, error) {
	var model CatalogEntryModel
	err := r.getDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_code = ?", productCode).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "锁定商品失败")
	}

	return toCatalogEntity(&model), nil
}

// Update 回写商品
// 注意:Quantity/TotalAdded的修改必须来自事务内锁定后的实体,
// 这里用Save回写全部字段
func (r *catalogRepository) Update(ctx context.Context, e *catalog.Entry) error {
	model := toCatalogModel(e)
	model.ID = e.ID
	model.CreatedAt = e.CreatedAt

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新商品失败")
	}

	e.UpdatedAt = model.UpdatedAt
	return nil
}

// ListListed 分页查询在售商品
func (r *catalogRepository) ListListed(ctx context.Context, params catalog.ListParams) ([]*catalog.Entry, int64, error) {
	var models []CatalogEntryModel
	var total int64

	query := r.getDB(ctx).Model(&CatalogEntryModel{}).Where("listed = ?", true)

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR product_code LIKE ?", keyword, keyword)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	query = query.Order("created_at DESC").Limit(params.PageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	entries := make([]*catalog.Entry, len(models))
	for i := range models {
		entries[i] = toCatalogEntity(&models[i])
	}

	return entries, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toCatalogEntity GORM模型 → 领域实体
func toCatalogEntity(model *CatalogEntryModel) *catalog.Entry {
	return &catalog.Entry{
		ID:          model.ID,
		ProductCode: model.ProductCode,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Quantity:    model.Quantity,
		TotalAdded:  model.TotalAdded,
		Listed:      model.Listed,
		Category:    model.Category,
		SellerID:    model.SellerID,
		CoverURL:    model.CoverURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// toCatalogModel 领域实体 → GORM模型
func toCatalogModel(e *catalog.Entry) *CatalogEntryModel {
	return &CatalogEntryModel{
		ID:          e.ID,
		ProductCode: e.ProductCode,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Quantity:    e.Quantity,
		TotalAdded:  e.TotalAdded,
		Listed:      e.Listed,
		Category:    e.Category,
		SellerID:    e.SellerID,
		CoverURL:    e.CoverURL,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *catalogRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
