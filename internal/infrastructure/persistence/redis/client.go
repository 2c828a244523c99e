package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 本服务只用Redis承载商品列表缓存,缓存是可降级依赖:
// 连接失败交给调用方处理(浏览退化为直连数据库),
// 所以启动探测必须有界超时,不能卡住整个进程的启动
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	pingTimeout := cfg.Redis.DialTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Printf("✓ Redis连接成功: %s (商品列表缓存, TTL=%s)", cfg.Redis.Addr(), cfg.Redis.CatalogTTL)
	return client, nil
}
