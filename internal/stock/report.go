package stock

import (
	"fmt"
	"time"

	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /stock/report/export
// Güncel stok listesini XLSX olarak indirir.
func ExportReportHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := loadItems(st)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Stok"
		index, err := f.NewSheet(sheet)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")

		headers := []string{"Ürün", "SKU", "Birim", "Tedarikçi", "Depo", "Eldeki", "Rezerve", "Kullanılabilir", "Kritik Seviye"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, item := range items {
			available := item.OnHand - item.Reserved
			if available < 0 {
				available = 0
			}
			values := []any{
				item.Name, item.SKU, item.Unit, item.Supplier, item.Warehouse,
				item.OnHand, item.Reserved, available, item.Critical,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor yazılamadı")
		}

		filename := fmt.Sprintf("stok-raporu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
