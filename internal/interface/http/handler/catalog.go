package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/asfundyarkhan/ticktok-sub001/internal/application/catalog"
	"github.com/asfundyarkhan/ticktok-sub001/internal/interface/http/dto"
	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/response"
)

// CatalogHandler 平台商品HTTP处理器
type CatalogHandler struct {
	restock *appcatalog.RestockUseCase
	browse  *appcatalog.BrowseCatalogUseCase
}

// NewCatalogHandler 创建商品处理器
func NewCatalogHandler(
	restock *appcatalog.RestockUseCase,
	browse *appcatalog.BrowseCatalogUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		restock: restock,
		browse:  browse,
	}
}

// Restock 管理员补货
// POST /api/v1/admin/catalog/restock
// 首次按编码创建条目,再次补货合并数量
func (h *CatalogHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.restock.Execute(c.Request.Context(), appcatalog.RestockRequest{
		ProductCode: req.ProductCode,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RestockResponse{
		EntryID:    result.EntryID,
		Quantity:   result.Quantity,
		TotalAdded: result.TotalAdded,
		Price:      result.Price,
	})
}

// Browse 浏览在售商品(公开接口,不需要身份)
// GET /api/v1/catalog?page=1&page_size=20&keyword=耳机
func (h *CatalogHandler) Browse(c *gin.Context) {
	var req dto.BrowseCatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.browse.Execute(c.Request.Context(), appcatalog.BrowseCatalogRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.CatalogItem, len(result.List))
	for i, item := range result.List {
		list[i] = dto.CatalogItem{
			ID:          item.ID,
			ProductCode: item.ProductCode,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			PriceYuan:   dto.FormatPriceYuan(item.Price),
			Quantity:    item.Quantity,
			Category:    item.Category,
			CoverURL:    item.CoverURL,
		}
	}

	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}
