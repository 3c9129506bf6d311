package servicecatalog

import "github.com/shopspring/decimal"

// Service модель услуги из каталога
type Service struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}
