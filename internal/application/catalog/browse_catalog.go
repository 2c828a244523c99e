package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/asfundyarkhan/ticktok-sub001/internal/domain/catalog"
	redisstore "github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/persistence/redis"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/circuitbreaker"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
)

// BrowseCatalogUseCase 买家浏览在售商品用例
// 设计说明:
// 1. Cache-Aside:先读Redis,未命中回源数据库并回填
// 2. 缓存读写经过熔断器:Redis故障时快速降级直连数据库,
//    不让每个请求都等Redis超时
// 3. 缓存与熔断器都允许为nil(纯数据库模式)
type BrowseCatalogUseCase struct {
	catalogRepo catalog.Repository
	cache       *redisstore.CatalogCache
	breaker     *circuitbreaker.CircuitBreaker
}

// NewBrowseCatalogUseCase 创建浏览用例
func NewBrowseCatalogUseCase(
	catalogRepo catalog.Repository,
	cache *redisstore.CatalogCache,
	breaker *circuitbreaker.CircuitBreaker,
) *BrowseCatalogUseCase {
	return &BrowseCatalogUseCase{
		catalogRepo: catalogRepo,
		cache:       cache,
		breaker:     breaker,
	}
}

// BrowseCatalogRequest 浏览请求DTO
type BrowseCatalogRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(名称、编码)
	Category string // 分类过滤
}

// CatalogListItem 列表项DTO
type CatalogListItem struct {
	ID          uint   `json:"id"`
	ProductCode string `json:"product_code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // 单价(分)
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
	CoverURL    string `json:"cover_url"`
}

// BrowseCatalogResponse 浏览响应DTO
type BrowseCatalogResponse struct {
	List       []CatalogListItem `json:"list"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Execute 执行浏览查询
func (uc *BrowseCatalogUseCase) Execute(ctx context.Context, req BrowseCatalogRequest) (*BrowseCatalogResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := catalog.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
	}

	// 2. 尝试读缓存
	if page, ok := uc.readCache(ctx, params); ok {
		return uc.toResponse(page.Entries, page.Total, req), nil
	}

	// 3. 回源数据库
	entries, total, err := uc.catalogRepo.ListListed(ctx, params)
	if err != nil {
		return nil, err
	}

	// 4. 回填缓存(尽力而为)
	uc.fillCache(ctx, params, &redisstore.CachedPage{Entries: entries, Total: total})

	return uc.toResponse(entries, total, req), nil
}

// readCache 经熔断器读缓存
// 返回ok=false表示未命中或缓存不可用,调用方回源数据库
func (uc *BrowseCatalogUseCase) readCache(ctx context.Context, params catalog.ListParams) (*redisstore.CachedPage, bool) {
	if uc.cache == nil {
		return nil, false
	}

	var page *redisstore.CachedPage
	read := func() error {
		p, err := uc.cache.GetPage(ctx, params)
		if err != nil {
			// 未命中是正常路径,不能计入熔断器失败
			if errors.Is(err, redisstore.ErrCacheMiss) {
				return nil
			}
			return err
		}
		page = p
		return nil
	}

	var err error
	if uc.breaker != nil {
		err = uc.breaker.Execute(read)
		uc.observeBreaker(err)
	} else {
		err = read()
	}

	if err != nil {
		// 熔断器打开或Redis故障:降级直连数据库
		log.Printf("商品缓存读取降级: %v", err)
		return nil, false
	}
	if page == nil {
		if metrics.CacheMissesTotal != nil {
			metrics.CacheMissesTotal.Inc()
		}
		return nil, false
	}

	if metrics.CacheHitsTotal != nil {
		metrics.CacheHitsTotal.Inc()
	}
	return page, true
}

// fillCache 经熔断器回填缓存(失败只记日志)
func (uc *BrowseCatalogUseCase) fillCache(ctx context.Context, params catalog.ListParams, page *redisstore.CachedPage) {
	if uc.cache == nil {
		return
	}

	write := func() error {
		return uc.cache.SetPage(ctx, params, page)
	}

	var err error
	if uc.breaker != nil {
		err = uc.breaker.Execute(write)
		uc.observeBreaker(err)
	} else {
		err = write()
	}
	if err != nil {
		log.Printf("商品缓存回填失败: %v", err)
	}
}

// observeBreaker 记录一次经熔断器的缓存访问结果
func (uc *BrowseCatalogUseCase) observeBreaker(err error) {
	if metrics.CircuitBreakerRequests == nil {
		return
	}
	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   uc.breaker.Name(),
		"result": result,
	})
}

func (uc *BrowseCatalogUseCase) toResponse(entries []*catalog.Entry, total int64, req BrowseCatalogRequest) *BrowseCatalogResponse {
	list := make([]CatalogListItem, len(entries))
	for i, e := range entries {
		list[i] = CatalogListItem{
			ID:          e.ID,
			ProductCode: e.ProductCode,
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Quantity:    e.Quantity,
			Category:    e.Category,
			CoverURL:    e.CoverURL,
		}
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &BrowseCatalogResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}
