package jobs

import (
	"fmt"
	"time"

	"atolye-backend/internal/models"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const collection = "jobs"

type CreateJobRequest struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	Title        string `json:"title"`
	StartType    string `json:"startType"`
}

type MeasureRequest struct {
	Measurements map[string]any `json:"measurements"`
	Appointment  map[string]any `json:"appointment"`
}

type OfferRequest struct {
	Lines  []any   `json:"lines"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}

type ApprovalRequest struct {
	PaymentPlan map[string]any `json:"paymentPlan"`
	ContractURL *string        `json:"contractUrl"`
	StockNeeds  []any          `json:"stockNeeds"`
}

type StockStatusRequest struct {
	Ready         bool    `json:"ready"`
	PurchaseNotes *string `json:"purchaseNotes"`
}

type ProductionRequest struct {
	Status        string  `json:"status"`
	Note          *string `json:"note"`
	AgreementDate *string `json:"agreementDate"`
}

type AssemblyScheduleRequest struct {
	Date string  `json:"date"`
	Note *string `json:"note"`
	Team *string `json:"team"`
}

type AssemblyCompleteRequest struct {
	Date  *string        `json:"date"`
	Note  *string        `json:"note"`
	Team  *string        `json:"team"`
	Proof map[string]any `json:"proof"`
}

type FinanceCloseRequest struct {
	Total    float64        `json:"total"`
	Payments map[string]any `json:"payments"`
	Discount map[string]any `json:"discount"` // {"amount": float, "note": string}
}

func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000")
}

func strPtr(s string) *string { return &s }

func loadJobs(st *store.Store) ([]models.Job, error) {
	var data []models.Job
	if err := st.Load(collection, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// findJob, koleksiyondaki işi lineer tarama ile bulur.
func findJob(data []models.Job, id string) int {
	for i := range data {
		if data[i].ID == id {
			return i
		}
	}
	return -1
}

// GET /jobs
func ListJobsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadJobs(st)
		if err != nil {
			return err
		}
		return c.JSON(data)
	}
}

// GET /jobs/:id
func GetJobHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := loadJobs(st)
		if err != nil {
			return err
		}
		idx := findJob(data, c.Params("id"))
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Job not found")
		}
		return c.JSON(data[idx])
	}
}

// POST /jobs
// Başlangıç tipine göre iki giriş noktası vardır: ölçü ile ya da doğrudan fiyatlandırma ile.
func CreateJobHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.StartType != models.StartTypeOlcu && body.StartType != models.StartTypeFiyatlandirma {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz startType (OLCU|FIYATLANDIRMA)")
		}

		data, err := loadJobs(st)
		if err != nil {
			return err
		}

		status := models.StatusFiyatlandirma
		if body.StartType == models.StartTypeOlcu {
			status = models.StatusOlcuAsamasi
		}

		job := models.Job{
			ID:           store.GenerateID("JOB"),
			Title:        body.Title,
			CustomerID:   body.CustomerID,
			CustomerName: body.CustomerName,
			Status:       status,
			StartType:    body.StartType,
			Measure:      map[string]any{},
			Offer:        map[string]any{},
			Approval:     map[string]any{},
			Stock:        map[string]any{},
			Production:   map[string]any{},
			Assembly:     map[string]any{},
			Finance:      map[string]any{},
			Logs:         []models.LogEntry{},
		}
		job.AppendLog(nowISO(), "created", strPtr(fmt.Sprintf("startType=%s", body.StartType)))

		data = append([]models.Job{job}, data...)
		if err := st.Save(collection, data); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(job)
	}
}

// updateJob, tek bir aşama mutasyonunu okuma-değiştirme-yazma döngüsüyle uygular.
func updateJob(st *store.Store, id string, mutate func(job *models.Job) error) (*models.Job, error) {
	data, err := loadJobs(st)
	if err != nil {
		return nil, err
	}
	idx := findJob(data, id)
	if idx < 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Job not found")
	}

	job := data[idx]
	if err := mutate(&job); err != nil {
		return nil, err
	}

	data[idx] = job
	if err := st.Save(collection, data); err != nil {
		return nil, err
	}
	return &job, nil
}

// PUT /jobs/:id/measure
func UpdateMeasureHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MeasureRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			job.Measure = map[string]any{
				"measurements": body.Measurements,
				"appointment":  body.Appointment,
			}
			job.Status = models.StatusFiyatlandirma
			job.AppendLog(nowISO(), "measure.updated", nil)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// PUT /jobs/:id/offer
func UpdateOfferHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		status := body.Status
		if status == "" {
			status = models.StatusTeklifTaslak
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			job.Offer = map[string]any{
				"lines":  body.Lines,
				"total":  body.Total,
				"status": status,
			}
			job.Status = status
			job.AppendLog(nowISO(), "offer.updated", nil)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// POST /jobs/:id/approval/start
func StartApprovalHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ApprovalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		stockNeeds := body.StockNeeds
		if stockNeeds == nil {
			stockNeeds = []any{}
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			job.Approval = map[string]any{
				"paymentPlan": body.PaymentPlan,
				"contractUrl": body.ContractURL,
				"stockNeeds":  stockNeeds,
			}
			job.Status = models.StatusOnayBekliyor
			job.AppendLog(nowISO(), "approval.started", nil)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// PUT /jobs/:id/stock
func UpdateStockStatusHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			stock := job.Stock
			if stock == nil {
				stock = map[string]any{}
			}
			stock["ready"] = body.Ready
			stock["purchaseNotes"] = body.PurchaseNotes
			job.Stock = stock

			if body.Ready {
				job.Status = models.StatusUretimeHazir
			} else {
				job.Status = models.StatusStokBekliyor
			}
			job.AppendLog(nowISO(), "stock.updated", strPtr(fmt.Sprintf("ready=%t", body.Ready)))
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// PUT /jobs/:id/production
func UpdateProductionHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		switch body.Status {
		case models.StatusUretimde, models.StatusMontajaHazir, models.StatusAnlasmada:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz üretim durumu (URETIMDE|MONTAJA_HAZIR|ANLASMADA)")
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			prod := map[string]any{
				"status": body.Status,
				"note":   body.Note,
			}
			if body.AgreementDate != nil && *body.AgreementDate != "" {
				prod["agreementDate"] = *body.AgreementDate
			}
			job.Production = prod
			job.Status = body.Status
			job.AppendLog(nowISO(), "production.updated", strPtr(body.Status))
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// PUT /jobs/:id/assembly/schedule
func ScheduleAssemblyHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssemblyScheduleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			if job.Assembly == nil {
				job.Assembly = map[string]any{}
			}
			job.Assembly["schedule"] = map[string]any{
				"date": body.Date,
				"note": body.Note,
				"team": body.Team,
			}
			job.Status = models.StatusMontajTermin
			job.AppendLog(nowISO(), "assembly.scheduled", nil)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// PUT /jobs/:id/assembly/complete
// Schedule alt kaydına sadece gönderilen alanlar işlenir; complete ayrı yazılır.
func CompleteAssemblyHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssemblyCompleteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			if job.Assembly == nil {
				job.Assembly = map[string]any{}
			}
			schedule, _ := job.Assembly["schedule"].(map[string]any)
			if schedule == nil {
				schedule = map[string]any{}
			}
			if body.Date != nil && *body.Date != "" {
				schedule["date"] = *body.Date
			}
			if body.Note != nil && *body.Note != "" {
				schedule["note"] = *body.Note
			}
			if body.Team != nil && *body.Team != "" {
				schedule["team"] = *body.Team
			}
			job.Assembly["schedule"] = schedule
			job.Assembly["complete"] = map[string]any{
				"at":    nowISO(),
				"proof": body.Proof,
			}
			job.Status = models.StatusMuhasebeBekliyor

			team := ""
			if body.Team != nil {
				team = *body.Team
			}
			job.AppendLog(nowISO(), "assembly.complete", strPtr(fmt.Sprintf("team=%s", team)))
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}

// numField, serbest şemalı alt kayıtlardan sayısal alan okur.
// JSON çözümünden float64 gelir; eksik ya da sayı olmayan alan 0 sayılır.
func numField(m map[string]any, key string) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	switch v := m[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func sumPayments(m map[string]any) decimal.Decimal {
	return numField(m, "cash").Add(numField(m, "card")).Add(numField(m, "cheque"))
}

// PUT /jobs/:id/finance/close
// Kapanış ancak bakiye sıfırsa (±0.01 tolerans) yapılabilir. İskonto varsa not zorunlu.
func CloseFinanceHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FinanceCloseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		job, err := updateJob(st, c.Params("id"), func(job *models.Job) error {
			offerTotal := numField(job.Offer, "total")

			var plan map[string]any
			if job.Approval != nil {
				plan, _ = job.Approval["paymentPlan"].(map[string]any)
			}
			preTotal := sumPayments(plan)
			finalTotal := sumPayments(body.Payments)
			discountAmt := numField(body.Discount, "amount")

			totalReceived := preTotal.Add(finalTotal).Add(discountAmt)
			balance := offerTotal.Sub(totalReceived).Round(2)

			if balance.Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Bakiye 0 olmalı. Fark: %s₺", balance))
			}
			if discountAmt.IsPositive() {
				note, _ := body.Discount["note"].(string)
				if note == "" {
					return fiber.NewError(fiber.StatusBadRequest, "İskonto notu zorunlu")
				}
			}

			job.Finance = map[string]any{
				"total": offerTotal.InexactFloat64(),
				"prePayments": map[string]any{
					"cash":   numField(plan, "cash").InexactFloat64(),
					"card":   numField(plan, "card").InexactFloat64(),
					"cheque": numField(plan, "cheque").InexactFloat64(),
				},
				"finalPayments": map[string]any{
					"cash":   numField(body.Payments, "cash").InexactFloat64(),
					"card":   numField(body.Payments, "card").InexactFloat64(),
					"cheque": numField(body.Payments, "cheque").InexactFloat64(),
				},
				"discount": body.Discount,
				"closedAt": nowISO(),
			}
			job.Status = models.StatusKapali
			job.AppendLog(nowISO(), "finance.closed", strPtr(fmt.Sprintf("balance=%s", balance)))
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(job)
	}
}
