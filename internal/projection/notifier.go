package projection

import (
	"context"
	"log"
	"time"

	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/mq"
)

// Notifier 变更事件发布器
// 业务规则:
// 1. 只在事务提交成功后调用——回滚的事务绝不能产生事件
// 2. 发布失败只记录日志,不影响已提交的交易结果
//    (订阅方有短TTL缓存和主动查询兜底)
type Notifier struct {
	publisher *mq.Publisher
}

// NewNotifier 创建变更事件发布器
func NewNotifier(publisher *mq.Publisher) *Notifier {
	return &Notifier{publisher: publisher}
}

// NotifyCatalogChanged 发布平台商品变更事件
func (n *Notifier) NotifyCatalogChanged(ctx context.Context) {
	n.publish(ctx, RoutingKeyCatalog, ChangeEvent{
		Collection: CollectionCatalog,
		At:         time.Now(),
	})
}

// NotifyInventoryChanged 发布卖家库存变更事件
func (n *Notifier) NotifyInventoryChanged(ctx context.Context, sellerID uint) {
	n.publish(ctx, RoutingKeyInventory(sellerID), ChangeEvent{
		Collection: CollectionInventory,
		OwnerID:    sellerID,
		At:         time.Now(),
	})
}

// NotifyListingsChanged 发布卖家挂牌变更事件
func (n *Notifier) NotifyListingsChanged(ctx context.Context, sellerID uint) {
	n.publish(ctx, RoutingKeyListings(sellerID), ChangeEvent{
		Collection: CollectionListings,
		OwnerID:    sellerID,
		At:         time.Now(),
	})
}

func (n *Notifier) publish(ctx context.Context, routingKey string, event ChangeEvent) {
	// 允许未接MQ运行(nil发布器),便于单测和本地调试
	if n == nil || n.publisher == nil {
		return
	}

	if err := n.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("发布变更事件失败: RoutingKey=%s, err=%v", routingKey, err)
		return
	}

	if metrics.MessagesPublishedTotal != nil {
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
			"routing_key": routingKey,
		})
	}
}
