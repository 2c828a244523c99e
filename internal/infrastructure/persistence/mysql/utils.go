package mysql

import (
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL错误码
// - 1062: Duplicate entry 'xxx' for key 'yyy'
// - 1213: Deadlock found when trying to get lock
// - 1205: Lock wait timeout exceeded
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDuplicateEntry
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isConflictError 判断是否为并发冲突错误(可重试)
// InnoDB在行锁竞争下会回滚其中一个事务(死锁)或超时,
// 这类失败重新执行事务体大概率成功——这正是事务管理器重试循环的触发条件
func isConflictError(err error) bool {
	if err == nil {
		return false
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDeadlock || myErr.Number == mysqlErrLockWaitTimeout
	}
	// 兼容检查:驱动未保留错误类型时按消息判断
	msg := err.Error()
	return strings.Contains(msg, "Deadlock found") ||
		strings.Contains(msg, "Lock wait timeout")
}
