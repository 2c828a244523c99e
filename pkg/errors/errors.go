package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
// 4. Retryable标记是否为"冲突可重试"错误：
//    业务校验失败（库存不足、余额不足等）是终态，不应重试；
//    事务冲突（死锁重试耗尽）调用方应退避后重试
type AppError struct {
	Code      int    `json:"code"`    // 业务错误码
	Message   string `json:"message"` // 用户友好的错误提示
	Err       error  `json:"-"`       // 内部错误（不序列化）
	Retryable bool   `json:"-"`       // 是否建议调用方重试
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapWithCode 用指定错误码包装系统错误
// 用途：区分数据库/Redis/MQ等不同基础设施的故障来源
func WrapWithCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapConflict 包装事务冲突错误（重试耗尽）
// 与业务校验失败的本质区别：数据本身可能没有问题，
// 只是并发竞争导致本次提交失败，调用方退避后重试大概率成功
func WrapConflict(err error) *AppError {
	return &AppError{
		Code:      ErrCodeTxConflict,
		Message:   "事务冲突，请稍后重试",
		Err:       err,
		Retryable: true,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 事务冲突（50900-50999）
	ErrCodeTxConflict = 50900 // 事务重试耗尽，可退避重试

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized = 40100 // 未提供身份
	ErrCodeForbidden    = 40104 // 无权限（非本人资源）

	// 资源错误（40400-40499）
	ErrCodeNotFound          = 40400 // 资源不存在(通用)
	ErrCodeCatalogNotFound   = 40401 // 商品不存在
	ErrCodeListingNotFound   = 40402 // 挂牌不存在
	ErrCodeAccountNotFound   = 40403 // 账户不存在
	ErrCodeInventoryNotFound = 40404 // 库存记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError         = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock     = 40001 // 平台库存不足
	ErrCodeInsufficientBalance   = 40002 // 余额不足
	ErrCodeInsufficientInventory = 40003 // 卖家库存不足
	ErrCodeNotListed             = 40004 // 商品未上架
	ErrCodeDuplicateEntry        = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrMQError       = New(ErrCodeMQError, "消息服务错误")

	// 事务冲突
	ErrTxConflict = &AppError{
		Code:      ErrCodeTxConflict,
		Message:   "事务冲突，请稍后重试",
		Retryable: true,
	}

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "缺少用户身份")
	ErrForbidden    = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrCatalogNotFound   = New(ErrCodeCatalogNotFound, "商品不存在")
	ErrListingNotFound   = New(ErrCodeListingNotFound, "挂牌不存在")
	ErrAccountNotFound   = New(ErrCodeAccountNotFound, "账户不存在")
	ErrInventoryNotFound = New(ErrCodeInventoryNotFound, "库存记录不存在")

	// 业务规则
	ErrInsufficientStock     = New(ErrCodeInsufficientStock, "平台库存不足")
	ErrInsufficientBalance   = New(ErrCodeInsufficientBalance, "账户余额不足")
	ErrInsufficientInventory = New(ErrCodeInsufficientInventory, "卖家库存不足")
	ErrNotListed             = New(ErrCodeNotListed, "商品未上架")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsRetryable 判断错误是否建议调用方重试
// 用途：HTTP层据此区分"冲突（可重试）"与"业务失败（终态）"
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}
