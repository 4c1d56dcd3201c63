package customers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"atolye-backend/internal/models"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const collection = "customers"

type CustomerRequest struct {
	Name     string `json:"name"`
	Segment  string `json:"segment"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
}

func loadCustomers(st *store.Store) ([]models.Customer, error) {
	var data []models.Customer
	if err := st.Load(collection, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// generateAccountCode: C-{yıl}-{4 hane}. Mevcut kodlarla çakışırsa yeniden üretilir;
// kod alanı küçük olduğundan benzersizlik burada açıkça kontrol edilir.
func generateAccountCode(customers []models.Customer) string {
	existing := make(map[string]bool, len(customers))
	for _, c := range customers {
		if c.AccountCode != "" {
			existing[c.AccountCode] = true
		}
	}

	year := time.Now().Year()
	for {
		code := fmt.Sprintf("C-%d-%d", year, 1000+rand.Intn(9000))
		if !existing[code] {
			return code
		}
	}
}

// GET /customers
func ListCustomersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadCustomers(st)
		if err != nil {
			return err
		}
		return c.JSON(data)
	}
}

// POST /customers
func CreateCustomerHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if len([]rune(body.Name)) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı en az 2 karakter olmalı")
		}

		data, err := loadCustomers(st)
		if err != nil {
			return err
		}

		customer := models.Customer{
			ID:          store.GenerateID("CST"),
			Name:        body.Name,
			Segment:     body.Segment,
			Location:    body.Location,
			Jobs:        0,
			Contact:     body.Contact,
			Deleted:     false,
			AccountCode: generateAccountCode(data),
		}

		data = append(data, customer)
		if err := st.Save(collection, data); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

// PUT /customers/:id
func UpdateCustomerHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		data, err := loadCustomers(st)
		if err != nil {
			return err
		}

		for i := range data {
			if data[i].ID == c.Params("id") {
				data[i].Name = body.Name
				data[i].Segment = body.Segment
				data[i].Location = body.Location
				data[i].Contact = body.Contact
				if err := st.Save(collection, data); err != nil {
					return err
				}
				return c.JSON(data[i])
			}
		}
		return fiber.NewError(fiber.StatusNotFound, "Customer not found")
	}
}

// DELETE /customers/:id
// Soft delete: kayıt silinmez, deleted işaretlenir.
func DeleteCustomerHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadCustomers(st)
		if err != nil {
			return err
		}

		for i := range data {
			if data[i].ID == c.Params("id") {
				data[i].Deleted = true
				if err := st.Save(collection, data); err != nil {
					return err
				}
				return c.JSON(fiber.Map{"id": data[i].ID, "deleted": true})
			}
		}
		return fiber.NewError(fiber.StatusNotFound, "Customer not found")
	}
}
