// Package projection 提供库存视图的实时变更通知
//
// 设计说明:
// 1. 交易引擎在事务提交后发布变更事件(只有提交成功才会有事件)
// 2. 事件是"某集合变了"的信号,不携带完整数据——
//    订阅方收到信号后重新查询,保证看到的永远是已提交的最新状态
// 3. 路由键按集合+归属者分层,订阅方只收自己关心的变更
package projection

import (
	"fmt"
	"time"
)

// 集合名称
const (
	CollectionCatalog   = "catalog"   // 平台商品
	CollectionInventory = "inventory" // 卖家库存
	CollectionListings  = "listings"  // 挂牌
)

// 路由键格式
// stock.catalog.changed                  全平台商品变更
// stock.inventory.changed.<sellerID>     某卖家库存变更
// stock.listing.changed.<sellerID>       某卖家挂牌变更
const (
	RoutingKeyCatalog = "stock.catalog.changed"
)

// RoutingKeyInventory 某卖家库存变更的路由键
func RoutingKeyInventory(sellerID uint) string {
	return fmt.Sprintf("stock.inventory.changed.%d", sellerID)
}

// RoutingKeyListings 某卖家挂牌变更的路由键
func RoutingKeyListings(sellerID uint) string {
	return fmt.Sprintf("stock.listing.changed.%d", sellerID)
}

// ChangeEvent 库存集合变更事件
type ChangeEvent struct {
	Collection string    `json:"collection"`         // 变更的集合
	OwnerID    uint      `json:"owner_id,omitempty"` // 归属者(catalog无归属者)
	At         time.Time `json:"at"`                 // 变更时间
}
