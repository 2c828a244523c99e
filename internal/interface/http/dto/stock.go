package dto

import "fmt"

// BuyStockRequest HTTP购入请求
type BuyStockRequest struct {
	ProductID uint `json:"product_id" binding:"required" example:"1"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=999" example:"5"`
}

// CreateListingRequest HTTP创建挂牌请求
type CreateListingRequest struct {
	ProductID uint  `json:"product_id" binding:"required" example:"1"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=999" example:"3"`
	Price     int64 `json:"price" binding:"required,min=1,max=99999999" example:"6900"` // 单价(分)
}

// UpdateListingRequest HTTP更新挂牌请求
// 指针字段缺省表示不修改
type UpdateListingRequest struct {
	Quantity    *int    `json:"quantity" binding:"omitempty,min=0,max=999" example:"2"`
	Price       *int64  `json:"price" binding:"omitempty,min=1,max=99999999" example:"7500"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// EngineResultResponse HTTP交易引擎结果
// success=false是业务校验失败(终态),调用方不应重试;
// 冲突可重试的情况走错误响应(retryable=true)
type EngineResultResponse struct {
	Success       bool   `json:"success" example:"true"`
	Message       string `json:"message" example:"购买成功"`
	Quantity      int    `json:"quantity" example:"5"`
	TotalCost     int64  `json:"total_cost" example:"29500"`
	TotalCostYuan string `json:"total_cost_yuan" example:"295.00"`
}

// InventoryItem HTTP库存列表项
type InventoryItem struct {
	ID           uint   `json:"id" example:"1"`
	ProductID    uint   `json:"product_id" example:"1"`
	Quantity     int    `json:"quantity" example:"5"`
	UnitCost     int64  `json:"unit_cost" example:"5900"`
	UnitCostYuan string `json:"unit_cost_yuan" example:"59.00"`
	Name         string `json:"name" example:"蓝牙耳机"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	UpdatedAt    string `json:"updated_at" example:"2024-11-06 10:30:00"`
}

// ListingItem HTTP挂牌列表项
type ListingItem struct {
	ID          uint   `json:"id" example:"1"`
	ProductID   uint   `json:"product_id" example:"1"`
	Quantity    int    `json:"quantity" example:"3"`
	Price       int64  `json:"price" example:"6900"`
	PriceYuan   string `json:"price_yuan" example:"69.00"`
	Name        string `json:"name" example:"蓝牙耳机"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	UpdatedAt   string `json:"updated_at" example:"2024-11-06 10:30:00"`
}

// TradeItem HTTP成交流水项
type TradeItem struct {
	ID          uint   `json:"id" example:"1"`
	TradeNo     string `json:"trade_no" example:"TRD1699248000123456"`
	ProductID   uint   `json:"product_id" example:"1"`
	ProductCode string `json:"product_code" example:"SKU-001"`
	Quantity    int    `json:"quantity" example:"5"`
	UnitPrice   int64  `json:"unit_price" example:"5900"`
	TotalPrice  int64  `json:"total_price" example:"29500"`
	TotalYuan   string `json:"total_yuan" example:"295.00"`
	CreatedAt   string `json:"created_at" example:"2024-11-06 10:30:00"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
