package account

import (
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// 账户领域错误定义
var (
	// ErrAccountNotFound 账户不存在
	ErrAccountNotFound = apperrors.ErrAccountNotFound

	// ErrInvalidAmount 无效的金额
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "金额必须大于0")

	// ErrInsufficientBalance 余额不足
	ErrInsufficientBalance = apperrors.ErrInsufficientBalance
)
