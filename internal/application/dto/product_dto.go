package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStockResponse nivel de stock de un producto.
type ProductStockResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category,omitempty"`
	UnitMeasure   string          `json:"unit_measure"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	LowStock      bool            `json:"low_stock"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReplenishmentSuggestion producto en o bajo su mínimo con la cantidad sugerida de pedido.
type ReplenishmentSuggestion struct {
	Priority           int             `json:"priority"`
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStockLevel      decimal.Decimal `json:"min_stock_level"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
}
