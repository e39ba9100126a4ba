package dto

import "github.com/shopspring/decimal"

// KPIResponse respuesta de GET /api/dashboard/kpis.
// Pendientes = operaciones en WAITING o READY.
type KPIResponse struct {
	TotalProductsQty           decimal.Decimal `json:"total_products_qty"`
	LowStockCount              int             `json:"low_stock_count"`    // current_stock <= min_stock_level
	OutOfStockCount            int             `json:"out_of_stock_count"` // current_stock == 0
	PendingReceipts            int             `json:"pending_receipts"`
	PendingDeliveries          int             `json:"pending_deliveries"`
	InternalTransfersScheduled int             `json:"internal_transfers_scheduled"`
}
