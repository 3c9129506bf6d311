package domain

import "github.com/shopspring/decimal"

// ExtraService is an add-on from the external service catalog (breakfast, transfer, ...)
type ExtraService struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// ServiceSelection is a service chosen for a stay
type ServiceSelection struct {
	ServiceID int64
	Quantity  int
}
