package stock

import (
	"errors"
	"time"

	"atolye-backend/internal/models"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const (
	itemsCollection     = "stockItems"
	movementsCollection = "stockMovements"

	defaultOperator  = "Sistem"
	defaultWarehouse = "Ana Depo"
)

// ItemRequest, bir stok kalemin yazılabilir alan kümesidir. Güncellemede kayıt
// bu alanlarla baştan kurulur; gönderilmeyen opsiyonel alanlar korunmaz.
type ItemRequest struct {
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
}

type MovementRequest struct {
	ItemID    string  `json:"itemId"`
	Qty       float64 `json:"qty"`
	Type      string  `json:"type"`
	Reason    *string `json:"reason"`
	Operator  *string `json:"operator"`
	Reference *string `json:"reference"`
	Location  *string `json:"location"`
}

type MovementResponse struct {
	Item     models.StockItem     `json:"item"`
	Movement models.StockMovement `json:"movement"`
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func (r ItemRequest) toItem(id string) models.StockItem {
	return models.StockItem{
		ID:           id,
		Name:         r.Name,
		SKU:          r.SKU,
		Unit:         r.Unit,
		Supplier:     r.Supplier,
		Category:     r.Category,
		Warehouse:    r.Warehouse,
		Barcode:      r.Barcode,
		Color:        r.Color,
		OnHand:       r.OnHand,
		Reserved:     r.Reserved,
		Critical:     r.Critical,
		ReorderPoint: r.ReorderPoint,
		MinOrderQty:  r.MinOrderQty,
		LeadTimeDays: r.LeadTimeDays,
		UnitCost:     r.UnitCost,
		Notes:        r.Notes,
		LastUpdated:  today(),
	}
}

func loadItems(st *store.Store) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := st.Load(itemsCollection, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func findItem(items []models.StockItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// GET /stock/items
func ListItemsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := loadItems(st)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// GET /stock/movements
func ListMovementsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var movs []models.StockMovement
		if err := st.Load(movementsCollection, &movs); err != nil {
			return err
		}
		return c.JSON(movs)
	}
}

// POST /stock/items
func CreateItemHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}

		items, err := loadItems(st)
		if err != nil {
			return err
		}

		item := body.toItem(store.GenerateID("STK"))
		items = append([]models.StockItem{item}, items...)
		if err := st.Save(itemsCollection, items); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /stock/items/:id
// Tam alan değişimi: kayıt payload'dan baştan kurulur, sadece id korunur.
func UpdateItemHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		items, err := loadItems(st)
		if err != nil {
			return err
		}
		idx := findItem(items, c.Params("id"))
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Stok kalemi bulunamadı")
		}

		items[idx] = body.toItem(items[idx].ID)
		if err := st.Save(itemsCollection, items); err != nil {
			return err
		}
		return c.JSON(items[idx])
	}
}

// DELETE /stock/items/:id
// Hard delete; kaleme ait hareket kayıtları defterde kalır.
func DeleteItemHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := loadItems(st)
		if err != nil {
			return err
		}
		idx := findItem(items, c.Params("id"))
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Stok kalemi bulunamadı")
		}

		items = append(items[:idx], items[idx+1:]...)
		if err := st.Save(itemsCollection, items); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "id": c.Params("id")})
	}
}

// POST /stock/movements
// Kalem bakiyesini günceller ve deftere tek hareket kaydı ekler (en yeni başta).
// İki koleksiyon bağımsız yazılır; ikinci yazma başarısız olursa geri alma yoktur,
// tek-yazar varsayımı altında kabul edilen bir kısıttır.
func CreateMovementHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Qty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar 0'dan büyük olmalı")
		}

		items, err := loadItems(st)
		if err != nil {
			return err
		}
		idx := findItem(items, body.ItemID)
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Stok kalemi bulunamadı")
		}
		item := &items[idx]

		var change float64
		switch body.Type {
		case models.MovementStockIn:
			item.OnHand += body.Qty
			change = body.Qty
		case models.MovementStockOut:
			// Fazla çekim sessizce emilir, bakiye negatife düşmez
			item.OnHand = max(0, item.OnHand-body.Qty)
			change = -body.Qty
		case models.MovementReserve:
			item.Reserved += body.Qty
			change = body.Qty
		case models.MovementRelease:
			item.Reserved = max(0, item.Reserved-body.Qty)
			change = -body.Qty
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hareket tipi (stockIn|stockOut|reserve|release)")
		}
		item.LastUpdated = today()

		location := strOr(body.Location, item.Warehouse)
		if location == "" {
			location = defaultWarehouse
		}

		mov := models.StockMovement{
			ID:        store.GenerateID("MOV"),
			Date:      today(),
			Item:      item.Name,
			ItemID:    item.ID,
			Change:    change,
			Reason:    strOr(body.Reason, ""),
			Operator:  strOr(body.Operator, defaultOperator),
			Reference: strOr(body.Reference, ""),
			Location:  location,
		}

		if err := st.Save(itemsCollection, items); err != nil {
			return err
		}

		var movs []models.StockMovement
		if err := st.Load(movementsCollection, &movs); err != nil {
			if !isNotFound(err) {
				return err
			}
			movs = []models.StockMovement{}
		}
		movs = append([]models.StockMovement{mov}, movs...)
		if err := st.Save(movementsCollection, movs); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(MovementResponse{Item: *item, Movement: mov})
	}
}

func strOr(p *string, def string) string {
	if p != nil && *p != "" {
		return *p
	}
	return def
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
