package server

import (
	"errors"
	"strings"

	"atolye-backend/internal/colors"
	"atolye-backend/internal/config"
	"atolye-backend/internal/customers"
	"atolye-backend/internal/documents"
	"atolye-backend/internal/jobs"
	"atolye-backend/internal/reference"
	"atolye-backend/internal/stock"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

// New, tüm route'ları bağlanmış Fiber uygulamasını kurar.
func New(cfg *config.Config, st *store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// İşler (yaşam döngüsü)
	app.Get("/jobs", jobs.ListJobsHandler(st))
	app.Post("/jobs", jobs.CreateJobHandler(st))
	app.Get("/jobs/:id", jobs.GetJobHandler(st))
	app.Put("/jobs/:id/measure", jobs.UpdateMeasureHandler(st))
	app.Put("/jobs/:id/offer", jobs.UpdateOfferHandler(st))
	app.Post("/jobs/:id/approval/start", jobs.StartApprovalHandler(st))
	app.Put("/jobs/:id/stock", jobs.UpdateStockStatusHandler(st))
	app.Put("/jobs/:id/production", jobs.UpdateProductionHandler(st))
	app.Put("/jobs/:id/assembly/schedule", jobs.ScheduleAssemblyHandler(st))
	app.Put("/jobs/:id/assembly/complete", jobs.CompleteAssemblyHandler(st))
	app.Put("/jobs/:id/finance/close", jobs.CloseFinanceHandler(st))

	// Stok defteri
	app.Get("/stock/items", stock.ListItemsHandler(st))
	app.Post("/stock/items", stock.CreateItemHandler(st))
	app.Put("/stock/items/:id", stock.UpdateItemHandler(st))
	app.Delete("/stock/items/:id", stock.DeleteItemHandler(st))
	app.Get("/stock/movements", stock.ListMovementsHandler(st))
	app.Post("/stock/movements", stock.CreateMovementHandler(st))
	app.Get("/stock/reservations", reference.ListCollectionHandler(st, "reservations"))
	app.Get("/stock/report/export", stock.ExportReportHandler(st))

	// Müşteriler
	app.Get("/customers", customers.ListCustomersHandler(st))
	app.Post("/customers", customers.CreateCustomerHandler(st))
	app.Put("/customers/:id", customers.UpdateCustomerHandler(st))
	app.Delete("/customers/:id", customers.DeleteCustomerHandler(st))

	// Renkler
	app.Get("/colors", colors.ListColorsHandler(st))
	app.Post("/colors", colors.CreateColorHandler(st))
	app.Put("/colors/:id", colors.UpdateColorHandler(st))
	app.Delete("/colors/:id", colors.DeleteColorHandler(st))

	// Dökümanlar
	app.Get("/documents", documents.ListDocumentsHandler(st))
	app.Post("/documents/upload", documents.UploadDocumentHandler(st, cfg))
	app.Get("/documents/job/:jobId", documents.ListJobDocumentsHandler(st))
	app.Get("/documents/:id", documents.GetDocumentHandler(st))
	app.Get("/documents/:id/download", documents.DownloadDocumentHandler(st, cfg))
	app.Delete("/documents/:id", documents.DeleteDocumentHandler(st, cfg))

	// Referans koleksiyonları (salt okunur)
	app.Get("/dashboard/summary", reference.ListCollectionHandler(st, "dashboard"))
	app.Get("/tasks", reference.ListCollectionHandler(st, "tasks"))
	app.Get("/planning/events", reference.ListCollectionHandler(st, "planningEvents"))
	app.Get("/purchase/orders", reference.ListCollectionHandler(st, "purchaseOrders"))
	app.Get("/purchase/suppliers", reference.ListCollectionHandler(st, "suppliers"))
	app.Get("/purchase/requests", reference.ListCollectionHandler(st, "requests"))
	app.Get("/finance/invoices", reference.ListCollectionHandler(st, "invoices"))
	app.Get("/finance/payments", reference.ListCollectionHandler(st, "payments"))
	app.Get("/archive/files", reference.ListCollectionHandler(st, "archiveFiles"))
	app.Get("/reports", reference.ListCollectionHandler(st, "reports"))
	app.Get("/settings", reference.ListCollectionHandler(st, "settings"))

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	// Eksik koleksiyon dosyası istemciye 404 olarak döner; çözülemeyen dosya sunucu hatasıdır
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	var decodeErr *store.DecodeError
	if errors.As(err, &decodeErr) {
		logrus.WithError(err).Error("koleksiyon dosyası çözülemedi")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": decodeErr.Error(),
		})
	}
	logrus.WithError(err).Error("beklenmeyen hata")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
	})
}
