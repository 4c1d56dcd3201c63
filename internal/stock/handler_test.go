package stock_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"atolye-backend/internal/config"
	"atolye-backend/internal/models"
	"atolye-backend/internal/server"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	cfg := &config.Config{
		HTTPPort:    "0",
		DataDir:     t.TempDir(),
		DocsDir:     t.TempDir(),
		CORSOrigins: "http://localhost:5173",
	}
	st := store.New(cfg.DataDir)
	require.NoError(t, st.Save("stockItems", []models.StockItem{}))
	require.NoError(t, st.Save("stockMovements", []models.StockMovement{}))
	return server.New(cfg, st), st
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func createItem(t *testing.T, app *fiber.App, name string, onHand, reserved float64) models.StockItem {
	t.Helper()
	resp := doJSON(t, app, "POST", "/stock/items", map[string]any{
		"name":      name,
		"sku":       "MDF-18",
		"unit":      "adet",
		"supplier":  "Yıldız Ahşap",
		"warehouse": "Depo 2",
		"onHand":    onHand,
		"reserved":  reserved,
		"critical":  5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var item models.StockItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	return item
}

func applyMovement(t *testing.T, app *fiber.App, body map[string]any) (models.StockItem, models.StockMovement, *http.Response) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/stock/movements", body)
	if resp.StatusCode != fiber.StatusCreated {
		return models.StockItem{}, models.StockMovement{}, resp
	}
	var out struct {
		Item     models.StockItem     `json:"item"`
		Movement models.StockMovement `json:"movement"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Item, out.Movement, resp
}

func TestCreateItem(t *testing.T) {
	app, _ := newTestApp(t)

	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)
	assert.Regexp(t, `^STK-[0-9A-F]{8}$`, item.ID)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, item.LastUpdated)
	assert.Equal(t, float64(40), item.OnHand)
}

func TestUpdateItemFullReplace(t *testing.T) {
	app, _ := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)

	// Gönderilmeyen alanlar (supplier, warehouse...) sıfırlanır — tam alan değişimi
	resp := doJSON(t, app, "PUT", "/stock/items/"+item.ID, map[string]any{
		"name":   "MDF Plaka 18mm",
		"sku":    "MDF-18-B",
		"unit":   "adet",
		"onHand": 35,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.StockItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "MDF-18-B", updated.SKU)
	assert.Equal(t, float64(35), updated.OnHand)
	assert.Empty(t, updated.Supplier)
	assert.Empty(t, updated.Warehouse)
}

func TestDeleteItem(t *testing.T) {
	app, st := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)
	_, _, resp := applyMovement(t, app, map[string]any{"itemId": item.ID, "qty": 5, "type": "stockOut"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/stock/items/"+item.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []models.StockItem
	require.NoError(t, st.Load("stockItems", &items))
	assert.Empty(t, items)

	// Hareket kayıtları defterde kalır
	var movs []models.StockMovement
	require.NoError(t, st.Load("stockMovements", &movs))
	assert.Len(t, movs, 1)

	resp = doJSON(t, app, "DELETE", "/stock/items/"+item.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMovementStockIn(t *testing.T) {
	app, _ := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)

	updated, mov, _ := applyMovement(t, app, map[string]any{
		"itemId": item.ID, "qty": 10, "type": "stockIn", "reason": "Satınalma teslimi",
	})
	assert.Equal(t, float64(50), updated.OnHand)
	assert.Equal(t, float64(10), mov.Change)
	assert.Regexp(t, `^MOV-[0-9A-F]{8}$`, mov.ID)
	assert.Equal(t, "MDF Plaka 18mm", mov.Item)
	assert.Equal(t, item.ID, mov.ItemID)
}

func TestMovementStockOutClampsAtZero(t *testing.T) {
	app, _ := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 8, 0)

	// Eldekinden fazla çıkış: bakiye 0'a sabitlenir, hareket tam miktarıyla yazılır
	updated, mov, _ := applyMovement(t, app, map[string]any{
		"itemId": item.ID, "qty": 20, "type": "stockOut",
	})
	assert.Equal(t, float64(0), updated.OnHand)
	assert.Equal(t, float64(-20), mov.Change)
}

func TestMovementReserveAndRelease(t *testing.T) {
	app, _ := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 3)

	updated, mov, _ := applyMovement(t, app, map[string]any{
		"itemId": item.ID, "qty": 5, "type": "reserve",
	})
	assert.Equal(t, float64(8), updated.Reserved)
	assert.Equal(t, float64(5), mov.Change)
	assert.Equal(t, float64(40), updated.OnHand) // reserve onHand'e dokunmaz

	updated, mov, _ = applyMovement(t, app, map[string]any{
		"itemId": item.ID, "qty": 20, "type": "release",
	})
	assert.Equal(t, float64(0), updated.Reserved) // sıfırın altına düşmez
	assert.Equal(t, float64(-20), mov.Change)
}

func TestMovementDefaults(t *testing.T) {
	app, _ := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)

	_, mov, _ := applyMovement(t, app, map[string]any{
		"itemId": item.ID, "qty": 1, "type": "stockIn",
		"reason": nil, "operator": nil, "reference": nil, "location": nil,
	})
	assert.Equal(t, "Sistem", mov.Operator)
	assert.Equal(t, "Depo 2", mov.Location) // payload boşsa kalemin deposu
}

func TestMovementLocationFallbackDefault(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/stock/items", map[string]any{
		"name": "Menteşe", "unit": "adet", "onHand": 100,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var item models.StockItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))

	_, mov, _ := applyMovement(t, app, map[string]any{
		"itemId": item.ID, "qty": 1, "type": "stockIn",
	})
	assert.Equal(t, "Ana Depo", mov.Location) // kalemde depo yoksa varsayılan
}

func TestMovementInsertedAtHead(t *testing.T) {
	app, st := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)

	_, first, _ := applyMovement(t, app, map[string]any{"itemId": item.ID, "qty": 5, "type": "stockIn"})
	_, second, _ := applyMovement(t, app, map[string]any{"itemId": item.ID, "qty": 3, "type": "stockOut"})

	var movs []models.StockMovement
	require.NoError(t, st.Load("stockMovements", &movs))
	require.Len(t, movs, 2)
	assert.Equal(t, second.ID, movs[0].ID) // en yeni başta
	assert.Equal(t, first.ID, movs[1].ID)
}

func TestMovementUnknownItem(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/stock/movements", map[string]any{
		"itemId": "STK-YOKYOK99", "qty": 5, "type": "stockIn",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMovementInvalidType(t *testing.T) {
	app, _ := newTestApp(t)
	item := createItem(t, app, "MDF Plaka 18mm", 40, 0)

	resp := doJSON(t, app, "POST", "/stock/movements", map[string]any{
		"itemId": item.ID, "qty": 5, "type": "transfer",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportReport(t *testing.T) {
	app, _ := newTestApp(t)
	createItem(t, app, "MDF Plaka 18mm", 40, 5)

	resp := doJSON(t, app, "GET", "/stock/report/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stok-raporu-")
}
