package catalog

import (
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrEntryNotFound 商品不存在
	ErrEntryNotFound = apperrors.ErrCatalogNotFound

	// ErrProductCodeDuplicate 商品编码已存在
	ErrProductCodeDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "商品编码已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 平台库存不足
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrNotListed 商品未上架
	ErrNotListed = apperrors.ErrNotListed
)
