package inventory

import (
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// 卖家库存领域错误定义
var (
	// ErrEntryNotFound 库存记录不存在
	ErrEntryNotFound = apperrors.ErrInventoryNotFound

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientInventory 卖家库存不足
	ErrInsufficientInventory = apperrors.ErrInsufficientInventory
)
