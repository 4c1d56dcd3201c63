package reference

import (
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ListCollectionHandler, salt okunur referans koleksiyonları için ortak handler:
// dosyayı olduğu gibi yükler ve döner. Dashboard, görevler, planlama, satınalma,
// finans listeleri, arşiv, raporlar ve ayarlar bu yoldan servis edilir.
func ListCollectionHandler(st *store.Store, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data any
		if err := st.Load(name, &data); err != nil {
			return err
		}
		return c.JSON(data)
	}
}
