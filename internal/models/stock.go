package models

// Hareket tipleri
const (
	MovementStockIn  = "stockIn"
	MovementStockOut = "stockOut"
	MovementReserve  = "reserve"
	MovementRelease  = "release"
)

// StockItem: onHand ve reserved hiçbir zaman negatife düşmez (reddetme yerine
// sıfıra sabitlenir).
type StockItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Unit         string  `json:"unit"`
	Supplier     string  `json:"supplier"`
	Category     string  `json:"category"`
	Warehouse    string  `json:"warehouse"`
	Barcode      string  `json:"barcode"`
	Color        string  `json:"color"`
	OnHand       float64 `json:"onHand"`
	Reserved     float64 `json:"reserved"`
	Critical     float64 `json:"critical"`
	ReorderPoint float64 `json:"reorderPoint"`
	MinOrderQty  float64 `json:"minOrderQty"`
	LeadTimeDays float64 `json:"leadTimeDays"`
	UnitCost     float64 `json:"unitCost"`
	Notes        string  `json:"notes"`
	LastUpdated  string  `json:"lastUpdated"` // YYYY-MM-DD
}

// StockMovement, defter kaydıdır: bir kez yazılır, asla değiştirilmez.
// Koleksiyonda en yeni kayıt başta tutulur.
type StockMovement struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Item      string  `json:"item"` // hareket anındaki ürün adı
	ItemID    string  `json:"itemId"`
	Change    float64 `json:"change"` // stockIn/reserve: +, stockOut/release: -
	Reason    string  `json:"reason"`
	Operator  string  `json:"operator"`
	Reference string  `json:"reference"`
	Location  string  `json:"location"`
}
