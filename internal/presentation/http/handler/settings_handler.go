package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sahilrao/billforge/internal/application/service"
	"github.com/sahilrao/billforge/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles business settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the settings update request body
type UpdateSettingsRequest struct {
	BusinessName       *string  `json:"business_name" binding:"omitempty,min=1,max=255"`
	BusinessAddress    *string  `json:"business_address"`
	BusinessPhone      *string  `json:"business_phone" binding:"omitempty,max=50"`
	BusinessEmail      *string  `json:"business_email" binding:"omitempty,email"`
	BusinessGSTIN      *string  `json:"business_gstin" binding:"omitempty,max=50"`
	LogoPath           *string  `json:"logo_path"`
	EstimatePrefix     *string  `json:"estimate_prefix" binding:"omitempty,max=20"`
	CurrencySymbol     *string  `json:"currency_symbol" binding:"omitempty,max=10"`
	DefaultTaxRate     *float64 `json:"default_tax_rate" binding:"omitempty,min=0,max=100"`
	SMTPServer         *string  `json:"smtp_server"`
	SMTPPort           *int     `json:"smtp_port" binding:"omitempty,min=1,max=65535"`
	SMTPUsername       *string  `json:"smtp_username"`
	SMTPPassword       *string  `json:"smtp_password"`
	TermsAndConditions *string  `json:"terms_and_conditions"`
	NotesFooter        *string  `json:"notes_footer"`
}

// TestEmailRequest represents the test email request body
type TestEmailRequest struct {
	ToEmail string `json:"to_email" binding:"required,email"`
}

// Get handles retrieving the business settings
// @Summary Get Settings
// @Description Get the business settings
// @Tags settings
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles updating the business settings
// @Summary Update Settings
// @Description Update the business settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings data"
// @Success 200 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateSettingsInput{
		BusinessName:       req.BusinessName,
		BusinessAddress:    req.BusinessAddress,
		BusinessPhone:      req.BusinessPhone,
		BusinessEmail:      req.BusinessEmail,
		BusinessGSTIN:      req.BusinessGSTIN,
		LogoPath:           req.LogoPath,
		EstimatePrefix:     req.EstimatePrefix,
		CurrencySymbol:     req.CurrencySymbol,
		SMTPServer:         req.SMTPServer,
		SMTPPort:           req.SMTPPort,
		SMTPUsername:       req.SMTPUsername,
		SMTPPassword:       req.SMTPPassword,
		TermsAndConditions: req.TermsAndConditions,
		NotesFooter:        req.NotesFooter,
	}
	if req.DefaultTaxRate != nil {
		rate := decimal.NewFromFloat(*req.DefaultTaxRate)
		input.DefaultTaxRate = &rate
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}

// TestEmail handles sending a test email
// @Summary Send Test Email
// @Description Send a test email through the configured SMTP server
// @Tags settings
// @Accept json
// @Produce json
// @Param request body TestEmailRequest true "Recipient"
// @Success 200 {object} response.APIResponse
// @Router /settings/email/test [post]
func (h *SettingsHandler) TestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.SendTestEmail(c.Request.Context(), req.ToEmail); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test email sent successfully", nil)
}
