package service

import (
	"context"

	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/sahilrao/billforge/internal/domain/repository"
	"github.com/sahilrao/billforge/pkg/apperror"
	"github.com/sahilrao/billforge/pkg/email"
	"github.com/shopspring/decimal"
)

// SettingsService handles the single-row business profile
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	mailer       *email.Mailer
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, mailer *email.Mailer) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, mailer: mailer}
}

// GetSettings retrieves the business settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.BusinessSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Business settings")
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating business settings.
// The estimate counter is deliberately absent: it only moves through document
// numbering.
type UpdateSettingsInput struct {
	BusinessName       *string
	BusinessAddress    *string
	BusinessPhone      *string
	BusinessEmail      *string
	BusinessGSTIN      *string
	LogoPath           *string
	EstimatePrefix     *string
	CurrencySymbol     *string
	DefaultTaxRate     *decimal.Decimal
	SMTPServer         *string
	SMTPPort           *int
	SMTPUsername       *string
	SMTPPassword       *string
	TermsAndConditions *string
	NotesFooter        *string
}

// UpdateSettings updates the business settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.BusinessSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		settings.BusinessAddress = input.BusinessAddress
	}
	if input.BusinessPhone != nil {
		settings.BusinessPhone = input.BusinessPhone
	}
	if input.BusinessEmail != nil {
		settings.BusinessEmail = input.BusinessEmail
	}
	if input.BusinessGSTIN != nil {
		settings.BusinessGSTIN = input.BusinessGSTIN
	}
	if input.LogoPath != nil {
		settings.LogoPath = input.LogoPath
	}
	if input.EstimatePrefix != nil {
		if *input.EstimatePrefix == "" {
			return nil, apperror.NewBadRequestError("Estimate prefix must not be empty")
		}
		settings.EstimatePrefix = *input.EstimatePrefix
	}
	if input.CurrencySymbol != nil {
		settings.CurrencySymbol = *input.CurrencySymbol
	}
	if input.DefaultTaxRate != nil {
		if input.DefaultTaxRate.IsNegative() {
			return nil, apperror.NewInvalidInputError("Default tax rate must not be negative")
		}
		settings.DefaultTaxRate = *input.DefaultTaxRate
	}
	if input.SMTPServer != nil {
		settings.SMTPServer = input.SMTPServer
	}
	if input.SMTPPort != nil {
		settings.SMTPPort = *input.SMTPPort
	}
	if input.SMTPUsername != nil {
		settings.SMTPUsername = input.SMTPUsername
	}
	if input.SMTPPassword != nil {
		settings.SMTPPassword = input.SMTPPassword
	}
	if input.TermsAndConditions != nil {
		settings.TermsAndConditions = input.TermsAndConditions
	}
	if input.NotesFooter != nil {
		settings.NotesFooter = input.NotesFooter
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SendTestEmail sends a test message through the configured SMTP server
func (s *SettingsService) SendTestEmail(ctx context.Context, toEmail string) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	if !settings.EmailConfigured() {
		return apperror.NewBadRequestError("Email settings are not configured")
	}
	if toEmail == "" {
		return apperror.NewBadRequestError("Recipient email address is required")
	}

	if err := s.mailer.SendTest(settings, toEmail); err != nil {
		return apperror.NewBadRequestError(err.Error())
	}
	return nil
}
