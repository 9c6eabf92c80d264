package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/application/service"
	"github.com/sahilrao/billforge/internal/presentation/http/dto/request"
	"github.com/sahilrao/billforge/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// ItemHandler handles inventory item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new inventory item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing inventory items
// @Summary List Items
// @Description Get all inventory items with pagination and filtering
// @Tags items
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param category query string false "Category filter"
// @Param active_only query bool false "Only active items"
// @Success 200 {object} response.APIResponse
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	result, err := h.itemService.ListItems(c.Request.Context(), &service.ListItemsInput{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active_only") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// LowStock handles listing items at or below their low-stock threshold
// @Summary List Low Stock Items
// @Description Get active items at or below their low-stock alert level
// @Tags items
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /items/low-stock [get]
func (h *ItemHandler) LowStock(c *gin.Context) {
	items, err := h.itemService.ListLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}

// Get handles getting a single inventory item
// @Summary Get Item
// @Description Get an inventory item by ID
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Create handles creating an inventory item
// @Summary Create Item
// @Description Create a new inventory item
// @Tags items
// @Accept json
// @Produce json
// @Param request body request.CreateItemRequest true "Item data"
// @Success 201 {object} response.APIResponse
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		SKU:                 req.SKU,
		Name:                req.Name,
		Description:         req.Description,
		Price:               decimal.NewFromFloat(req.Price),
		TaxRate:             decimal.NewFromFloat(req.TaxRate),
		DefaultDiscountRate: decimal.NewFromFloat(req.DefaultDiscountRate),
		Category:            req.Category,
		Unit:                req.Unit,
		StockQuantity:       req.StockQuantity,
		LowStockAlert:       req.LowStockAlert,
		SizeMMLength:        req.SizeMMLength,
		SizeMMWidth:         req.SizeMMWidth,
		SizeMMHeight:        req.SizeMMHeight,
		SizeInchesLength:    req.SizeInchesLength,
		SizeInchesWidth:     req.SizeInchesWidth,
		SizeInchesHeight:    req.SizeInchesHeight,
		Material:            req.Material,
		Finish:              req.Finish,
		Color:               req.Color,
		Weight:              req.Weight,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Update handles updating an inventory item
// @Summary Update Item
// @Description Update an existing inventory item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body request.UpdateItemRequest true "Item data"
// @Success 200 {object} response.APIResponse
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateItemInput{
		ID:            id,
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Unit:          req.Unit,
		StockQuantity: req.StockQuantity,
		LowStockAlert: req.LowStockAlert,
		IsActive:      req.IsActive,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		input.Price = &price
	}
	if req.TaxRate != nil {
		rate := decimal.NewFromFloat(*req.TaxRate)
		input.TaxRate = &rate
	}
	if req.DefaultDiscountRate != nil {
		rate := decimal.NewFromFloat(*req.DefaultDiscountRate)
		input.DefaultDiscountRate = &rate
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting an inventory item
// @Summary Delete Item
// @Description Delete an inventory item by ID
// @Tags items
// @Param id path string true "Item ID"
// @Success 204
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
