package models

// Document, yüklenen dosyanın metadata kaydıdır. Dosyanın kendisi
// DocsDir altında Path ile işaret edilen yerde durur; metadata kaydı
// asıl kaynak kabul edilir.
type Document struct {
	ID           string  `json:"id"`
	JobID        string  `json:"jobId"`
	Type         string  `json:"type"` // olcu | teknik | sozlesme | teklif | diger
	Filename     string  `json:"filename"`
	OriginalName string  `json:"originalName"`
	Path         string  `json:"path"` // DocsDir'e göre relative
	MimeType     string  `json:"mimeType"`
	Size         int64   `json:"size"`
	UploadedBy   string  `json:"uploadedBy"`
	UploadedAt   string  `json:"uploadedAt"`
	Description  *string `json:"description"`
}
