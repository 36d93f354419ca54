package settings

import (
	"github.com/alimikegami/point-of-sales/cashier-service/config"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/service"
	"github.com/shopspring/decimal"
)

// ConfigSettingsProvider serves store settings from the service config. The
// settings service proper lives outside this service; env-backed values are
// its read model here.
type ConfigSettingsProvider struct {
	settings config.StoreSettings
}

func CreateSettingsProvider(config *config.Config) service.SettingsProvider {
	return &ConfigSettingsProvider{
		settings: config.StoreSettings,
	}
}

func (p *ConfigSettingsProvider) DiscountPercent() decimal.Decimal {
	return p.settings.DiscountPercent
}

func (p *ConfigSettingsProvider) TaxPercent() decimal.Decimal {
	return p.settings.TaxPercent
}

func (p *ConfigSettingsProvider) Currency() string {
	if p.settings.Currency == "" {
		return "IDR"
	}

	return p.settings.Currency
}

func (p *ConfigSettingsProvider) ReceiptNumberFormat() string {
	return p.settings.ReceiptNumberFormat
}
