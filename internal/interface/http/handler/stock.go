package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appstock "github.com/asfundyarkhan/ticktok-sub001/internal/application/stock"
	"github.com/asfundyarkhan/ticktok-sub001/internal/interface/http/dto"
	"github.com/asfundyarkhan/ticktok-sub001/internal/interface/http/middleware"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/response"
)

// StockHandler 库存交易HTTP处理器
type StockHandler struct {
	buyStock      *appstock.BuyStockUseCase
	createListing *appstock.CreateListingUseCase
	updateListing *appstock.UpdateListingUseCase
	deleteListing *appstock.DeleteListingUseCase
	queries       *appstock.QueryUseCase
}

// NewStockHandler 创建库存交易处理器
func NewStockHandler(
	buyStock *appstock.BuyStockUseCase,
	createListing *appstock.CreateListingUseCase,
	updateListing *appstock.UpdateListingUseCase,
	deleteListing *appstock.DeleteListingUseCase,
	queries *appstock.QueryUseCase,
) *StockHandler {
	return &StockHandler{
		buyStock:      buyStock,
		createListing: createListing,
		updateListing: updateListing,
		deleteListing: deleteListing,
		queries:       queries,
	}
}

// BuyStock 购入平台库存
// POST /api/v1/stock/buy
//
// 响应约定:
// - 校验失败(库存不足、余额不足等)是code=0的正常响应,
//   data.success=false,客户端不应重试
// - 事务冲突返回code=50900且retryable=true,客户端退避后重试
func (h *StockHandler) BuyStock(c *gin.Context) {
	var req dto.BuyStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	buyerID := middleware.MustGetUserID(c)

	result, err := h.buyStock.Execute(c.Request.Context(), appstock.BuyStockRequest{
		BuyerID:   buyerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toEngineResult(result))
}

// CreateListing 创建挂牌
// POST /api/v1/listings
func (h *StockHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	sellerID := middleware.MustGetUserID(c)

	result, err := h.createListing.Execute(c.Request.Context(), appstock.CreateListingRequest{
		SellerID:  sellerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toEngineResult(result))
}

// UpdateListing 更新挂牌
// PUT /api/v1/listings/:id
func (h *StockHandler) UpdateListing(c *gin.Context) {
	listingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	sellerID := middleware.MustGetUserID(c)

	result, err := h.updateListing.Execute(c.Request.Context(), appstock.UpdateListingRequest{
		ListingID:   listingID,
		SellerID:    sellerID,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toEngineResult(result))
}

// DeleteListing 删除挂牌(剩余数量退回库存)
// DELETE /api/v1/listings/:id
func (h *StockHandler) DeleteListing(c *gin.Context) {
	listingID, ok := parseIDParam(c)
	if !ok {
		return
	}

	sellerID := middleware.MustGetUserID(c)

	result, err := h.deleteListing.Execute(c.Request.Context(), appstock.DeleteListingRequest{
		ListingID: listingID,
		SellerID:  sellerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toEngineResult(result))
}

// ListInventory 查询当前卖家的库存
// GET /api/v1/inventory
func (h *StockHandler) ListInventory(c *gin.Context) {
	sellerID := middleware.MustGetUserID(c)

	entries, err := h.queries.ListInventory(c.Request.Context(), sellerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.InventoryItem, len(entries))
	for i, e := range entries {
		list[i] = dto.InventoryItem{
			ID:           e.ID,
			ProductID:    e.ProductID,
			Quantity:     e.Quantity,
			UnitCost:     e.UnitCost,
			UnitCostYuan: dto.FormatPriceYuan(e.UnitCost),
			Name:         e.Name,
			Description:  e.Description,
			ImageURL:     e.ImageURL,
			UpdatedAt:    e.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	response.Success(c, list)
}

// ListListings 查询当前卖家的挂牌
// GET /api/v1/listings
func (h *StockHandler) ListListings(c *gin.Context) {
	sellerID := middleware.MustGetUserID(c)

	listings, err := h.queries.ListListings(c.Request.Context(), sellerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.ListingItem, len(listings))
	for i, l := range listings {
		list[i] = dto.ListingItem{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			Price:       l.Price,
			PriceYuan:   dto.FormatPriceYuan(l.Price),
			Name:        l.Name,
			Description: l.Description,
			ImageURL:    l.ImageURL,
			UpdatedAt:   l.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	response.Success(c, list)
}

// ListTrades 查询当前用户的成交流水
// GET /api/v1/trades?page=1&page_size=20
func (h *StockHandler) ListTrades(c *gin.Context) {
	buyerID := middleware.MustGetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	trades, total, err := h.queries.ListTrades(c.Request.Context(), buyerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.TradeItem, len(trades))
	for i, t := range trades {
		list[i] = dto.TradeItem{
			ID:          t.ID,
			TradeNo:     t.TradeNo,
			ProductID:   t.ProductID,
			ProductCode: t.ProductCode,
			Quantity:    t.Quantity,
			UnitPrice:   t.UnitPrice,
			TotalPrice:  t.TotalPrice,
			TotalYuan:   dto.FormatPriceYuan(t.TotalPrice),
			CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	response.SuccessWithPage(c, list, total, page, pageSize)
}

// toEngineResult 引擎结果 → HTTP DTO
func toEngineResult(result *appstock.Result) *dto.EngineResultResponse {
	return &dto.EngineResultResponse{
		Success:       result.Success,
		Message:       result.Message,
		Quantity:      result.Quantity,
		TotalCost:     result.TotalCost,
		TotalCostYuan: dto.FormatPriceYuan(result.TotalCost),
	}
}

// parseIDParam 解析路径参数:id
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的ID")
		return 0, false
	}
	return uint(id), true
}
