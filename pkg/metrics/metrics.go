// Package metrics 提供基于Prometheus的指标收集
//
// 指标命名规范：
// - Counter以_total结尾
// - Histogram以单位结尾(_seconds)
// - 标签只用低基数维度(操作名、结果),不用user_id等高基数值
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/stock/buy）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 交易引擎指标

	// EngineOpsTotal 交易引擎操作总数（Counter）
	// 标签：op（buy_stock/create_listing/update_listing/delete_listing）、
	//       outcome（success/rejected/conflict/error）
	// rejected=业务校验失败(终态), conflict=事务冲突重试耗尽(可重试)
	EngineOpsTotal *prometheus.CounterVec

	// EngineOpDuration 交易引擎操作耗时（Histogram）
	// 标签：op
	EngineOpDuration *prometheus.HistogramVec

	// EngineTxRetriesTotal 事务冲突重试次数（Counter）
	EngineTxRetriesTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 缓存指标

	// CacheHitsTotal 缓存命中总数（Counter）
	CacheHitsTotal prometheus.Counter

	// CacheMissesTotal 缓存未命中总数（Counter）
	CacheMissesTotal prometheus.Counter

	// 消息队列指标

	// MessagesPublishedTotal 变更事件发布总数（Counter）
	// 标签：routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 变更事件消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 交易引擎指标
	EngineOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_ops_total",
			Help: "交易引擎操作总数",
		},
		[]string{"op", "outcome"},
	)

	EngineOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "engine_op_duration_seconds",
			Help: "交易引擎操作耗时（秒）",
			// 单次操作就是一个行锁事务,耗时集中在10ms~500ms
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"op"},
	)

	EngineTxRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_tx_retries_total",
			Help: "事务冲突重试次数",
		},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 缓存指标
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "商品列表缓存命中总数",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "商品列表缓存未命中总数",
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "变更事件发布总数",
		},
		[]string{"routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "变更事件消费总数",
		},
		[]string{"queue", "result"},
	)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
