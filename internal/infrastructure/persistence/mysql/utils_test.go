package mysql

import (
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// TestIsDuplicateError 测试唯一索引冲突判断
func TestIsDuplicateError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"GORM重复键", gorm.ErrDuplicatedKey, true},
		{"MySQL 1062", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'SKU-1' for key 'product_code'"}, true},
		{"MySQL 1213死锁不是重复键", &gomysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}, false},
		{"包装后的1062", fmt.Errorf("创建失败: %w", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), true},
		{"消息兼容判断", errors.New("Error 1062: Duplicate entry 'TRD123' for key 'trade_no'"), true},
		{"普通错误", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateError(tc.err); got != tc.want {
				t.Errorf("isDuplicateError(%v)=%v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

// TestIsConflictError 测试并发冲突判断(重试触发条件)
func TestIsConflictError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"MySQL 1213死锁", &gomysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}, true},
		{"MySQL 1205锁等待超时", &gomysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, true},
		{"MySQL 1062不是冲突", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"包装后的1213", fmt.Errorf("购买失败: %w", &gomysql.MySQLError{Number: 1213, Message: "Deadlock found"}), true},
		{"消息兼容判断死锁", errors.New("Deadlock found when trying to get lock; try restarting transaction"), true},
		{"消息兼容判断锁超时", errors.New("Lock wait timeout exceeded; try restarting transaction"), true},
		{"记录不存在不是冲突", gorm.ErrRecordNotFound, false},
		{"普通错误", errors.New("invalid connection"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isConflictError(tc.err); got != tc.want {
				t.Errorf("isConflictError(%v)=%v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
