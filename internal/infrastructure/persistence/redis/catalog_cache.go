package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("catalog cache miss")

// CatalogCache 商品列表缓存(Cache-Aside)
// 设计说明：
// 1. 缓存的是分页查询结果(整页JSON),不是单条商品
// 2. Key设计：catalog:list:v{version}:{page}:{size}:{keyword}:{category}
// 3. 失效策略：INCR版本号使所有列表页一次性失效,
//    避免SCAN/KEYS遍历删除;旧版本key靠TTL自然过期
// 4. 商品数量每笔交易都在变,TTL必须短(默认30秒),
//    下单校验始终以事务内锁定的数据库行为准
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache 创建商品列表缓存
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// CachedPage 缓存的分页结果
type CachedPage struct {
	Entries []*catalog.Entry `json:"entries"`
	Total   int64            `json:"total"`
}

// GetPage 读取缓存的列表页
// 缓存未接入(nil)按未命中处理,调用方直接回源数据库
func (c *CatalogCache) GetPage(ctx context.Context, params catalog.ListParams) (*CachedPage, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	key, err := c.pageKey(ctx, params)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "读取商品列表缓存失败")
	}

	var page CachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		// 缓存内容损坏按未命中处理,由DB兜底
		return nil, ErrCacheMiss
	}

	return &page, nil
}

// SetPage 写入列表页缓存
func (c *CatalogCache) SetPage(ctx context.Context, params catalog.ListParams, page *CachedPage) error {
	if c == nil || c.client == nil {
		return nil
	}

	key, err := c.pageKey(ctx, params)
	if err != nil {
		return err
	}

	data, err := json.Marshal(page)
	if err != nil {
		return apperrors.Wrap(err, "序列化商品列表失败")
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "写入商品列表缓存失败")
	}

	return nil
}

// Invalidate 使全部列表页失效(版本号+1)
// 事务提交后调用;失败只记录日志不阻塞主流程,
// 短TTL保证陈旧数据很快过期
// 用例通过接口持有缓存,降级时会拿到typed-nil,这里必须自己兜底
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "商品缓存失效失败")
	}
	return nil
}

const versionKey = "catalog:list:version"

// pageKey 生成列表页缓存key(带版本号)
func (c *CatalogCache) pageKey(ctx context.Context, params catalog.ListParams) (string, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "读取缓存版本失败")
	}

	return fmt.Sprintf("catalog:list:v%d:%d:%d:%s:%s",
		ver, params.Page, params.PageSize, params.Keyword, params.Category), nil
}
