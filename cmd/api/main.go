package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appcatalog "github.com/asfundyarkhan/ticktok-sub001/internal/application/catalog"
	appstock "github.com/asfundyarkhan/ticktok-sub001/internal/application/stock"
	"github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/config"
	"github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/persistence/mysql"
	redisstore "github.com/asfundyarkhan/ticktok-sub001/internal/infrastructure/persistence/redis"
	"github.com/asfundyarkhan/ticktok-sub001/internal/interface/http/handler"
	"github.com/asfundyarkhan/ticktok-sub001/internal/interface/http/middleware"
	"github.com/asfundyarkhan/ticktok-sub001/internal/projection"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/circuitbreaker"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/mq"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/response"
)

// main 主程序入口(手动依赖注入)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 事件交换机: %s\n", cfg.RabbitMQ.Exchange)

	// 2. 初始化指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	// 缓存不可用时降级运行:浏览直连数据库,失效通知跳过
	var catalogCache *redisstore.CatalogCache
	redisClient, err := redisstore.NewClient(cfg)
	if err != nil {
		log.Printf("⚠ Redis不可用,商品列表缓存已禁用: %v", err)
	} else {
		catalogCache = redisstore.NewCatalogCache(redisClient, cfg.Redis.CatalogTTL)
	}

	// 5. 初始化变更事件发布器
	// MQ不可用时降级运行:交易照常,实时推送缺席
	var notifier *projection.Notifier
	publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic")
	if err != nil {
		log.Printf("⚠ RabbitMQ不可用,变更事件推送已禁用: %v", err)
	} else {
		defer publisher.Close()
	}
	notifier = projection.NewNotifier(publisher)

	// 6. 依赖注入(手动组装)
	// Repository ← UseCase ← Handler

	// 基础设施层
	catalogRepo := mysql.NewCatalogRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	listingRepo := mysql.NewListingRepository(db)
	ledgerRepo := mysql.NewLedgerRepository(db)
	accountRepo := mysql.NewAccountRepository(db)
	txManager := mysql.NewTxManager(db).WithRetry(cfg.Engine.MaxRetries, cfg.Engine.RetryBackoff)

	cacheBreaker := circuitbreaker.NewCircuitBreaker("catalog-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cacheBreaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变化: %s -> %s", name, from, to)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})

	// 应用层
	buyStockUseCase := appstock.NewBuyStockUseCase(
		catalogRepo, inventoryRepo, ledgerRepo, accountRepo, txManager, notifier, catalogCache)
	createListingUseCase := appstock.NewCreateListingUseCase(inventoryRepo, listingRepo, txManager, notifier)
	updateListingUseCase := appstock.NewUpdateListingUseCase(inventoryRepo, listingRepo, txManager, notifier)
	deleteListingUseCase := appstock.NewDeleteListingUseCase(inventoryRepo, listingRepo, txManager, notifier)
	stockQueries := appstock.NewQueryUseCase(inventoryRepo, listingRepo, ledgerRepo)
	restockUseCase := appcatalog.NewRestockUseCase(catalogRepo, txManager, notifier, catalogCache)
	browseUseCase := appcatalog.NewBrowseCatalogUseCase(catalogRepo, catalogCache, cacheBreaker)

	// 接口层
	stockHandler := handler.NewStockHandler(
		buyStockUseCase, createListingUseCase, updateListingUseCase, deleteListingUseCase, stockQueries)
	catalogHandler := handler.NewCatalogHandler(restockUseCase, browseUseCase)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// 8. 注册路由
	registerRoutes(r, stockHandler, catalogHandler)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, stockHandler *handler.StockHandler, catalogHandler *handler.CatalogHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 商品浏览(公开接口,不需要身份)
		v1.GET("/catalog", catalogHandler.Browse)

		// 管理端补货(身份由网关注入,管理员权限在网关校验)
		admin := v1.Group("/admin", middleware.Identity())
		{
			admin.POST("/catalog/restock", catalogHandler.Restock)
		}

		// 交易引擎(需要身份)
		authorized := v1.Group("", middleware.Identity())
		{
			// 购入平台库存
			authorized.POST("/stock/buy", stockHandler.BuyStock)

			// 挂牌管理
			authorized.POST("/listings", stockHandler.CreateListing)
			authorized.PUT("/listings/:id", stockHandler.UpdateListing)
			authorized.DELETE("/listings/:id", stockHandler.DeleteListing)
			authorized.GET("/listings", stockHandler.ListListings)

			// 库存与流水查询
			authorized.GET("/inventory", stockHandler.ListInventory)
			authorized.GET("/trades", stockHandler.ListTrades)
		}
	}
}
