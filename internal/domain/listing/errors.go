package listing

import (
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// 挂牌领域错误定义
var (
	// ErrListingNotFound 挂牌不存在
	ErrListingNotFound = apperrors.ErrListingNotFound

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不合法")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrNotOwner 无权操作他人挂牌
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权操作此挂牌")
)
