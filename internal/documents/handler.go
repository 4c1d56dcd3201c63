package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"atolye-backend/internal/config"
	"atolye-backend/internal/models"
	"atolye-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const collection = "documents"

// Döküman tipleri alt klasör adlarıdır
var docTypes = []string{"olcu", "teknik", "sozlesme", "teklif", "diger"}

var allowedTypes = map[string]string{
	"image/jpeg":         ".jpg",
	"image/png":          ".png",
	"image/gif":          ".gif",
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

func validDocType(t string) bool {
	for _, dt := range docTypes {
		if t == dt {
			return true
		}
	}
	return false
}

func loadDocs(st *store.Store) ([]models.Document, error) {
	var docs []models.Document
	if err := st.Load(collection, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func findDoc(docs []models.Document, id string) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}

// GET /documents?job_id=...&doc_type=...
func ListDocumentsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := loadDocs(st)
		if err != nil {
			return err
		}

		jobID := c.Query("job_id")
		docType := c.Query("doc_type")

		filtered := make([]models.Document, 0, len(docs))
		for _, d := range docs {
			if jobID != "" && d.JobID != jobID {
				continue
			}
			if docType != "" && d.Type != docType {
				continue
			}
			filtered = append(filtered, d)
		}
		return c.JSON(filtered)
	}
}

// GET /documents/job/:jobId
func ListJobDocumentsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := loadDocs(st)
		if err != nil {
			return err
		}

		filtered := make([]models.Document, 0)
		for _, d := range docs {
			if d.JobID == c.Params("jobId") {
				filtered = append(filtered, d)
			}
		}
		return c.JSON(filtered)
	}
}

// GET /documents/:id
func GetDocumentHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := loadDocs(st)
		if err != nil {
			return err
		}
		idx := findDoc(docs, c.Params("id"))
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Döküman bulunamadı")
		}
		return c.JSON(docs[idx])
	}
}

// GET /documents/:id/download
func DownloadDocumentHandler(st *store.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := loadDocs(st)
		if err != nil {
			return err
		}
		idx := findDoc(docs, c.Params("id"))
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Döküman bulunamadı")
		}
		doc := docs[idx]

		filePath := filepath.Join(cfg.DocsDir, filepath.FromSlash(doc.Path))
		if _, err := os.Stat(filePath); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dosya bulunamadı")
		}

		name := doc.OriginalName
		if name == "" {
			name = doc.Filename
		}
		return c.Download(filePath, name)
	}
}

// POST /documents/upload (multipart)
func UploadDocumentHandler(st *store.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docType := c.FormValue("docType")
		if !validDocType(docType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz döküman tipi")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		contentType := fileHeader.Header.Get("Content-Type")
		ext, ok := allowedTypes[contentType]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Desteklenmeyen dosya tipi: %s. Desteklenen: JPEG, PNG, GIF, PDF, DOC, DOCX", contentType))
		}

		docID := store.GenerateID("DOC")
		safeName := fmt.Sprintf("%s_%s%s", docID, time.Now().UTC().Format("20060102150405"), ext)

		targetDir := filepath.Join(cfg.DocsDir, "documents", docType)
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi: "+err.Error())
		}
		targetPath := filepath.Join(targetDir, safeName)
		if err := c.SaveFile(fileHeader, targetPath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi: "+err.Error())
		}

		var description *string
		if d := c.FormValue("description"); d != "" {
			description = &d
		}

		doc := models.Document{
			ID:           docID,
			JobID:        c.FormValue("jobId"),
			Type:         docType,
			Filename:     safeName,
			OriginalName: fileHeader.Filename,
			Path:         fmt.Sprintf("documents/%s/%s", docType, safeName),
			MimeType:     contentType,
			Size:         fileHeader.Size,
			UploadedBy:   "Kullanıcı",
			UploadedAt:   time.Now().UTC().Format("2006-01-02T15:04:05") + "Z",
			Description:  description,
		}

		docs, err := loadDocs(st)
		if err != nil {
			return err
		}
		docs = append([]models.Document{doc}, docs...)
		if err := st.Save(collection, docs); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DELETE /documents/:id
// Metadata kaydı asıl kaynaktır; dosya silme best-effort yapılır,
// dosya zaten yoksa ya da silinemezse işlem yine başarılı sayılır.
func DeleteDocumentHandler(st *store.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := loadDocs(st)
		if err != nil {
			return err
		}
		idx := findDoc(docs, c.Params("id"))
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Döküman bulunamadı")
		}
		doc := docs[idx]

		filePath := filepath.Join(cfg.DocsDir, filepath.FromSlash(doc.Path))
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("döküman dosyası silinemedi")
		}

		docs = append(docs[:idx], docs[idx+1:]...)
		if err := st.Save(collection, docs); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"success": true, "id": doc.ID})
	}
}
