package ledger

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTradeNo 生成交易号
// 交易号设计原则:
// 1. 全局唯一(数据库唯一索引兜底)
// 2. 时间有序(便于分库分表)
// 3. 不可预测(防止恶意遍历)
//
// 格式:TRD + 时间戳(秒) + 6位随机数
// 示例:TRD1699248000123456
func GenerateTradeNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000) // 6位随机数
	return fmt.Sprintf("TRD%d%06d", timestamp, random)
}
