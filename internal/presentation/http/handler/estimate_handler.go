package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahilrao/billforge/internal/application/service"
	"github.com/sahilrao/billforge/internal/domain/enum"
	"github.com/sahilrao/billforge/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// EstimateHandler handles estimate-related HTTP requests
type EstimateHandler struct {
	estimateService *service.EstimateService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimateService *service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// EstimateLineRequest represents a line item in the request
type EstimateLineRequest struct {
	ItemID       *string `json:"item_id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	DiscountRate float64 `json:"discount_rate"`
	TaxRate      float64 `json:"tax_rate"`
}

// CreateEstimateRequest represents the create estimate request body
type CreateEstimateRequest struct {
	CustomerID         *string               `json:"customer_id"`
	Date               string                `json:"date"`
	DueDate            *string               `json:"due_date"`
	Notes              *string               `json:"notes"`
	Terms              *string               `json:"terms"`
	GlobalDiscountRate float64               `json:"global_discount_rate"`
	GlobalTaxRate      *float64              `json:"global_tax_rate"`
	Items              []EstimateLineRequest `json:"items"`
}

// UpdateEstimateRequest represents the update estimate request body. The full
// set of line items replaces the stored ones.
type UpdateEstimateRequest struct {
	CustomerID         *string               `json:"customer_id"`
	Date               *string               `json:"date"`
	DueDate            *string               `json:"due_date"`
	Notes              *string               `json:"notes"`
	Terms              *string               `json:"terms"`
	GlobalDiscountRate *float64              `json:"global_discount_rate"`
	GlobalTaxRate      *float64              `json:"global_tax_rate"`
	Items              []EstimateLineRequest `json:"items"`
}

// UpdateEstimateStatusRequest represents the status change request body
type UpdateEstimateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SendEstimateRequest represents the email send request body
type SendEstimateRequest struct {
	ToEmail string `json:"to_email" binding:"omitempty,email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// List handles listing estimates
// @Summary List Estimates
// @Description Get all estimates with pagination and filtering
// @Tags estimates
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query string false "Status filter"
// @Param customer_id query string false "Customer filter"
// @Success 200 {object} response.APIResponse
// @Router /estimates [get]
func (h *EstimateHandler) List(c *gin.Context) {
	var status *enum.EstimateStatus
	if s := c.Query("status"); s != "" {
		st := enum.EstimateStatus(s)
		status = &st
	}

	var customerID *uuid.UUID
	if cid := c.Query("customer_id"); cid != "" {
		parsed, err := uuid.Parse(cid)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &parsed
	}

	result, err := h.estimateService.ListEstimates(c.Request.Context(), &service.ListEstimatesInput{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		Status:     status,
		CustomerID: customerID,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Estimates retrieved successfully", result)
}

// Get handles getting a single estimate
// @Summary Get Estimate
// @Description Get an estimate by ID with its line items
// @Tags estimates
// @Produce json
// @Param id path string true "Estimate ID"
// @Success 200 {object} response.APIResponse
// @Router /estimates/{id} [get]
func (h *EstimateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate retrieved successfully", estimate)
}

// Create handles creating an estimate
// @Summary Create Estimate
// @Description Create a new estimate with computed totals
// @Tags estimates
// @Accept json
// @Produce json
// @Param request body CreateEstimateRequest true "Estimate data"
// @Success 201 {object} response.APIResponse
// @Router /estimates [post]
func (h *EstimateHandler) Create(c *gin.Context) {
	var req CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		date = parsed
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due date format. Use YYYY-MM-DD")
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	lines, err := parseEstimateLines(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateEstimateInput{
		CustomerID:         customerID,
		Date:               date,
		DueDate:            dueDate,
		Notes:              req.Notes,
		Terms:              req.Terms,
		GlobalDiscountRate: decimal.NewFromFloat(req.GlobalDiscountRate),
		Lines:              lines,
	}
	if req.GlobalTaxRate != nil {
		rate := decimal.NewFromFloat(*req.GlobalTaxRate)
		input.GlobalTaxRate = &rate
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Estimate created successfully", estimate)
}

// Update handles updating an estimate
// @Summary Update Estimate
// @Description Update an estimate, replacing its line items and recomputing totals
// @Tags estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param request body UpdateEstimateRequest true "Estimate data"
// @Success 200 {object} response.APIResponse
// @Router /estimates/{id} [put]
func (h *EstimateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due date format. Use YYYY-MM-DD")
		return
	}

	lines, err := parseEstimateLines(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateEstimateInput{
		ID:         id,
		CustomerID: customerID,
		Date:       date,
		DueDate:    dueDate,
		Notes:      req.Notes,
		Terms:      req.Terms,
		Lines:      lines,
	}
	if req.GlobalDiscountRate != nil {
		rate := decimal.NewFromFloat(*req.GlobalDiscountRate)
		input.GlobalDiscountRate = &rate
	}
	if req.GlobalTaxRate != nil {
		rate := decimal.NewFromFloat(*req.GlobalTaxRate)
		input.GlobalTaxRate = &rate
	}

	estimate, err := h.estimateService.UpdateEstimate(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate updated successfully", estimate)
}

// UpdateStatus handles changing an estimate's lifecycle status
// @Summary Update Estimate Status
// @Description Move an estimate to a new status
// @Tags estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param request body UpdateEstimateStatusRequest true "Status"
// @Success 200 {object} response.APIResponse
// @Router /estimates/{id}/status [patch]
func (h *EstimateHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req UpdateEstimateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	estimate, err := h.estimateService.UpdateEstimateStatus(c.Request.Context(), id, enum.EstimateStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate status updated successfully", estimate)
}

// Delete handles deleting an estimate
// @Summary Delete Estimate
// @Description Delete an estimate and its line items
// @Tags estimates
// @Param id path string true "Estimate ID"
// @Success 204
// @Router /estimates/{id} [delete]
func (h *EstimateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	if err := h.estimateService.DeleteEstimate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DownloadPDF handles rendering an estimate as a PDF
// @Summary Download Estimate PDF
// @Description Render the estimate to PDF using its stored totals
// @Tags estimates
// @Produce application/pdf
// @Param id path string true "Estimate ID"
// @Success 200 {file} binary
// @Router /estimates/{id}/pdf [get]
func (h *EstimateHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	data, estimate, err := h.estimateService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("%s.pdf", estimate.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", data)
}

// Send handles emailing an estimate PDF
// @Summary Send Estimate
// @Description Email the estimate PDF to the customer and mark it as sent
// @Tags estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID"
// @Param request body SendEstimateRequest true "Email options"
// @Success 200 {object} response.APIResponse
// @Router /estimates/{id}/send [post]
func (h *EstimateHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req SendEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	estimate, err := h.estimateService.SendEstimate(c.Request.Context(), &service.SendEstimateInput{
		ID:      id,
		ToEmail: req.ToEmail,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate sent successfully", estimate)
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseEstimateLines(items []EstimateLineRequest) ([]service.EstimateLineInput, error) {
	lines := make([]service.EstimateLineInput, len(items))
	for i, item := range items {
		itemID, err := parseOptionalUUID(item.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item ID on line %d", i+1)
		}
		lines[i] = service.EstimateLineInput{
			ItemID:       itemID,
			SKU:          item.SKU,
			Name:         item.Name,
			Description:  item.Description,
			Quantity:     decimal.NewFromFloat(item.Quantity),
			UnitPrice:    decimal.NewFromFloat(item.UnitPrice),
			DiscountRate: decimal.NewFromFloat(item.DiscountRate),
			TaxRate:      decimal.NewFromFloat(item.TaxRate),
		}
	}
	return lines, nil
}
