package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
	"github.com/stokku/grocery-inventory/internal/inventory/service"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(is service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	invRoutes := router.Group("/inventory")
	{
		invRoutes.GET("", h.ListItems)
		invRoutes.GET("/low-stock", h.ListLowStockItems)
		invRoutes.GET("/:id", h.GetItem)
		invRoutes.POST("", h.CreateItem)
		invRoutes.PUT("/:id", h.UpdateItem)
		invRoutes.PATCH("/:id/quantity", h.UpdateQuantity)
		invRoutes.DELETE("/:id", h.DeleteItem)
	}
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, "ListItems", err)
		return
	}
	respondOK(c, items)
}

func (h *InventoryHandler) ListLowStockItems(c *gin.Context) {
	items, err := h.inventoryService.ListLowStockItems(c.Request.Context())
	if err != nil {
		respondError(c, "ListLowStockItems", err)
		return
	}
	respondOK(c, items)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.inventoryService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "GetItem", err)
		return
	}
	respondOK(c, item)
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req domain.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.inventoryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateItem", err)
		return
	}
	respondCreated(c, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req domain.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "UpdateItem", err)
		return
	}
	respondOK(c, item)
}

func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	var req domain.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.inventoryService.UpdateQuantity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "UpdateQuantity", err)
		return
	}
	respondOK(c, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	item, err := h.inventoryService.DeleteItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "DeleteItem", err)
		return
	}
	respondOK(c, item)
}
