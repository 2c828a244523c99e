package projection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/inventory"
	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/listing"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/mq"
)

// catalogSnapshotSize 商品快照页大小
// 订阅推送的是在售商品首页快照,深分页数据走主动查询
const catalogSnapshotSize = 200

// eventStream 一路订阅的消费流
// 生产实现是pkg/mq的临时队列Consumer;单测注入内存假流
type eventStream interface {
	Consume(ctx context.Context, handler func(routingKey string, body []byte) error) error
	Close() error
}

// streamOpener 按队列名和路由键打开一条消费流
type streamOpener func(queue string, routingKeys []string) (eventStream, error)

// Subscriber 变更事件订阅器
// 设计说明:
// 1. 每个订阅创建一个专属临时队列(uuid后缀,连接断开即删除),
//    多个订阅者各收一份事件,互不分流
// 2. 事件只是"变了"的信号:订阅器收到后重新查询数据库,
//    回调拿到的永远是已提交的最新状态(不会看到事务中间态)
// 3. 订阅建立后立即推送一次当前快照,之后每个事件推送一次
// 4. 消费流异常走onError回调,数据回调永远只收数据
// 5. 返回的Subscription句柄支持Cancel,只拆除自己这一路订阅
type Subscriber struct {
	openStream streamOpener

	catalogRepo   catalog.Repository
	inventoryRepo inventory.Repository
	listingRepo   listing.Repository
}

// NewSubscriber 创建订阅器
func NewSubscriber(
	url, exchange string,
	catalogRepo catalog.Repository,
	inventoryRepo inventory.Repository,
	listingRepo listing.Repository,
) *Subscriber {
	return &Subscriber{
		openStream: func(queue string, routingKeys []string) (eventStream, error) {
			return mq.NewEphemeralConsumer(url, exchange, "topic", queue, routingKeys)
		},
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		listingRepo:   listingRepo,
	}
}

// Subscription 订阅句柄
type Subscription struct {
	queue  string
	cancel context.CancelFunc
	stream eventStream
	done   chan struct{}
}

// Cancel 取消订阅(阻塞直到消费循环退出)
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
	s.stream.Close()
}

// SubscribeCatalog 订阅平台在售商品变更
// 每次变更推送在售商品首页快照
func (s *Subscriber) SubscribeCatalog(onUpdate func([]*catalog.Entry), onError func(error)) (*Subscription, error) {
	reload := func(ctx context.Context) error {
		entries, _, err := s.catalogRepo.ListListed(ctx, catalog.ListParams{
			Page:     1,
			PageSize: catalogSnapshotSize,
		})
		if err != nil {
			return err
		}
		onUpdate(entries)
		return nil
	}
	return s.subscribe("catalog", []string{RoutingKeyCatalog}, reload, onError)
}

// SubscribeInventory 订阅某卖家的库存变更
func (s *Subscriber) SubscribeInventory(sellerID uint, onUpdate func([]*inventory.Entry), onError func(error)) (*Subscription, error) {
	reload := func(ctx context.Context) error {
		entries, err := s.inventoryRepo.ListBySeller(ctx, sellerID)
		if err != nil {
			return err
		}
		onUpdate(entries)
		return nil
	}
	return s.subscribe(
		fmt.Sprintf("inventory.%d", sellerID),
		[]string{RoutingKeyInventory(sellerID)},
		reload, onError,
	)
}

// SubscribeListings 订阅某卖家的挂牌变更
func (s *Subscriber) SubscribeListings(sellerID uint, onUpdate func([]*listing.Listing), onError func(error)) (*Subscription, error) {
	reload := func(ctx context.Context) error {
		listings, err := s.listingRepo.ListBySeller(ctx, sellerID)
		if err != nil {
			return err
		}
		onUpdate(listings)
		return nil
	}
	return s.subscribe(
		fmt.Sprintf("listings.%d", sellerID),
		[]string{RoutingKeyListings(sellerID)},
		reload, onError,
	)
}

func (s *Subscriber) subscribe(name string, routingKeys []string, reload func(ctx context.Context) error, onError func(error)) (*Subscription, error) {
	queue := fmt.Sprintf("projection.%s.%s", name, uuid.NewString())

	stream, err := s.openStream(queue, routingKeys)
	if err != nil {
		return nil, fmt.Errorf("创建订阅失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		queue:  queue,
		cancel: cancel,
		stream: stream,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)

		// 初始快照:订阅建立后立即推送一次当前状态
		if err := reload(ctx); err != nil {
			if ctx.Err() == nil && onError != nil {
				onError(err)
			}
			return
		}

		err := stream.Consume(ctx, func(routingKey string, body []byte) error {
			if err := reload(ctx); err != nil {
				// 重查失败上报后Ack:事件本身没有数据,重新入队没有意义,
				// 下一个事件到达时会再次重查
				s.observeConsumed(queue, "failure")
				if ctx.Err() == nil && onError != nil {
					onError(err)
				}
				return nil
			}
			s.observeConsumed(queue, "success")
			return nil
		})

		// ctx取消属于正常退出,只上报消费流异常
		if err != nil && ctx.Err() == nil && onError != nil {
			onError(err)
		}
	}()

	return sub, nil
}

func (s *Subscriber) observeConsumed(queue, result string) {
	if metrics.MessagesConsumedTotal != nil {
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
			"queue":  queue,
			"result": result,
		})
	}
}
