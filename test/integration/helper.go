package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 需要完整运行环境(MySQL/Redis/RabbitMQ+服务进程),
// 服务不可达时测试自动跳过

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// EngineResult 交易引擎操作结果
type EngineResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Quantity      int    `json:"quantity"`
	TotalCost     int64  `json:"total_cost"`
	TotalCostYuan string `json:"total_cost_yuan"`
}

// RestockData 补货响应数据
type RestockData struct {
	EntryID    uint  `json:"entry_id"`
	Quantity   int   `json:"quantity"`
	TotalAdded int   `json:"total_added"`
	Price      int64 `json:"price"`
}

// CatalogListData 商品列表响应数据(统一分页结构)
type CatalogListData struct {
	List       []CatalogItem `json:"list"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// CatalogItem 商品列表项
type CatalogItem struct {
	ID          uint   `json:"id"`
	ProductCode string `json:"product_code"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// InventoryItem 卖家库存项
type InventoryItem struct {
	ID        uint  `json:"id"`
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitCost  int64 `json:"unit_cost"`
}

// ListingItem 挂牌项
type ListingItem struct {
	ID        uint  `json:"id"`
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// RequireServer 服务不可达时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务不可达,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// doJSON 发送HTTP请求并解析JSON响应
// 身份由X-User-ID头传递(网关注入模型,测试直接模拟网关)
func doJSON(t *testing.T, method, url string, data interface{}, userID uint) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, userID uint) *Response {
	return doJSON(t, "POST", url, data, userID)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, userID uint) *Response {
	return doJSON(t, "PUT", url, data, userID)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, userID uint) *Response {
	return doJSON(t, "DELETE", url, nil, userID)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, userID uint) *Response {
	return doJSON(t, "GET", url, nil, userID)
}

// GenerateProductCode 生成唯一的测试商品编码
// 使用纳秒时间戳避免测试重复运行时编码冲突
func GenerateProductCode(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// RestockTestProduct 补货一个测试商品并返回商品条目ID
func RestockTestProduct(t *testing.T, adminID uint, price int64, quantity int) uint {
	t.Helper()

	req := map[string]interface{}{
		"product_code": GenerateProductCode("ITEST"),
		"name":         "集成测试商品",
		"description":  "集成测试用",
		"price":        price,
		"quantity":     quantity,
		"category":     "测试",
	}

	resp := PostJSON(t, BaseURL+"/admin/catalog/restock", req, adminID)
	require.Equal(t, 0, resp.Code, "补货失败: %s", resp.Message)

	var data RestockData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析补货响应失败")
	require.NotZero(t, data.EntryID)

	return data.EntryID
}

// BuyTestStock 购入平台库存并返回引擎结果
func BuyTestStock(t *testing.T, buyerID, productID uint, quantity int) *EngineResult {
	t.Helper()

	req := map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}

	resp := PostJSON(t, BaseURL+"/stock/buy", req, buyerID)
	require.Equal(t, 0, resp.Code, "购买请求失败: %s", resp.Message)

	var result EngineResult
	err := json.Unmarshal(resp.Data, &result)
	require.NoError(t, err, "解析引擎结果失败")

	return &result
}

// CreateTestListing 创建挂牌并返回引擎结果
func CreateTestListing(t *testing.T, sellerID, productID uint, quantity int, price int64) *EngineResult {
	t.Helper()

	req := map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
		"price":      price,
	}

	resp := PostJSON(t, BaseURL+"/listings", req, sellerID)
	require.Equal(t, 0, resp.Code, "挂牌请求失败: %s", resp.Message)

	var result EngineResult
	err := json.Unmarshal(resp.Data, &result)
	require.NoError(t, err, "解析引擎结果失败")

	return &result
}

// FindListingID 查询卖家对某商品的挂牌ID
func FindListingID(t *testing.T, sellerID, productID uint) uint {
	t.Helper()

	resp := GetJSON(t, BaseURL+"/listings", sellerID)
	require.Equal(t, 0, resp.Code, "查询挂牌失败: %s", resp.Message)

	var items []ListingItem
	err := json.Unmarshal(resp.Data, &items)
	require.NoError(t, err, "解析挂牌列表失败")

	for _, item := range items {
		if item.ProductID == productID {
			return item.ID
		}
	}
	t.Fatalf("未找到卖家%d对商品%d的挂牌", sellerID, productID)
	return 0
}

// FindInventoryQuantity 查询卖家对某商品的库存数量
func FindInventoryQuantity(t *testing.T, sellerID, productID uint) int {
	t.Helper()

	resp := GetJSON(t, BaseURL+"/inventory", sellerID)
	require.Equal(t, 0, resp.Code, "查询库存失败: %s", resp.Message)

	var items []InventoryItem
	err := json.Unmarshal(resp.Data, &items)
	require.NoError(t, err, "解析库存列表失败")

	for _, item := range items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}
