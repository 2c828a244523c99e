package dto

// RestockRequest HTTP补货请求(管理端)
type RestockRequest struct {
	ProductCode string `json:"product_code" binding:"required,max=64" example:"SKU-001"`
	Name        string `json:"name" binding:"omitempty,max=200" example:"蓝牙耳机"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Price       int64  `json:"price" binding:"omitempty,min=1,max=99999999" example:"5900"` // 单价(分)
	Quantity    int    `json:"quantity" binding:"required,min=1,max=99999" example:"100"`
	Category    string `json:"category" binding:"omitempty,max=64" example:"数码"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=500"`
}

// RestockResponse HTTP补货响应
type RestockResponse struct {
	EntryID    uint  `json:"entry_id" example:"1"`
	Quantity   int   `json:"quantity" example:"100"`
	TotalAdded int   `json:"total_added" example:"100"`
	Price      int64 `json:"price" example:"5900"`
}

// BrowseCatalogRequest HTTP商品浏览请求
type BrowseCatalogRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"耳机"`
	Category string `form:"category" binding:"omitempty,max=64" example:"数码"`
}

// CatalogItem HTTP商品列表项
type CatalogItem struct {
	ID          uint   `json:"id" example:"1"`
	ProductCode string `json:"product_code" example:"SKU-001"`
	Name        string `json:"name" example:"蓝牙耳机"`
	Description string `json:"description"`
	Price       int64  `json:"price" example:"5900"`
	PriceYuan   string `json:"price_yuan" example:"59.00"`
	Quantity    int    `json:"quantity" example:"100"`
	Category    string `json:"category" example:"数码"`
	CoverURL    string `json:"cover_url"`
}
