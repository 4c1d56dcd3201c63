package colors

import (
	"errors"

	"atolye-backend/internal/models"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const collection = "colors"

type ColorRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// loadColors, koleksiyon dosyası yoksa boş olarak başlatır.
func loadColors(st *store.Store) ([]models.Color, error) {
	var data []models.Color
	if err := st.Load(collection, &data); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			data = []models.Color{}
			if err := st.Save(collection, data); err != nil {
				return nil, err
			}
			return data, nil
		}
		return nil, err
	}
	return data, nil
}

// GET /colors
func ListColorsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadColors(st)
		if err != nil {
			return err
		}
		return c.JSON(data)
	}
}

// POST /colors
func CreateColorHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ColorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		data, err := loadColors(st)
		if err != nil {
			return err
		}

		for _, col := range data {
			if col.Code == body.Code {
				return fiber.NewError(fiber.StatusBadRequest, "Renk kodu zaten mevcut")
			}
		}

		color := models.Color{
			ID:   store.GenerateID("CLR"),
			Name: body.Name,
			Code: body.Code,
		}
		data = append(data, color)
		if err := st.Save(collection, data); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(color)
	}
}

// PUT /colors/:id
func UpdateColorHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ColorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		data, err := loadColors(st)
		if err != nil {
			return err
		}

		for i := range data {
			if data[i].ID == c.Params("id") {
				data[i].Name = body.Name
				data[i].Code = body.Code
				if err := st.Save(collection, data); err != nil {
					return err
				}
				return c.JSON(data[i])
			}
		}
		return fiber.NewError(fiber.StatusNotFound, "Renk bulunamadı")
	}
}

// DELETE /colors/:id
// Filtreleyerek siler; kayıt yoksa da başarı döner.
func DeleteColorHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadColors(st)
		if err != nil {
			return err
		}

		next := make([]models.Color, 0, len(data))
		for _, col := range data {
			if col.ID != c.Params("id") {
				next = append(next, col)
			}
		}
		if err := st.Save(collection, next); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
