package models

// İş durumları. Akış: ölçü → fiyatlandırma → onay → stok → üretim → montaj → muhasebe → kapalı.
// Durum alanı bilgilendirme amaçlıdır; aşama operasyonları mevcut duruma bakılmaksızın çağrılabilir.
const (
	StatusOlcuAsamasi      = "OLCU_ASAMASI"
	StatusFiyatlandirma    = "FIYATLANDIRMA"
	StatusTeklifTaslak     = "TEKLIF_TASLAK"
	StatusOnayBekliyor     = "ONAY_BEKLIYOR"
	StatusUretimeHazir     = "URETIME_HAZIR"
	StatusStokBekliyor     = "STOK_BEKLIYOR"
	StatusUretimde         = "URETIMDE"
	StatusMontajaHazir     = "MONTAJA_HAZIR"
	StatusAnlasmada        = "ANLASMADA"
	StatusMontajTermin     = "MONTAJ_TERMIN"
	StatusMuhasebeBekliyor = "MUHASEBE_BEKLIYOR"
	StatusKapali           = "KAPALI" // terminal
)

// Başlangıç tipleri
const (
	StartTypeOlcu          = "OLCU"
	StartTypeFiyatlandirma = "FIYATLANDIRMA"
)

type LogEntry struct {
	At     string  `json:"at"`
	Action string  `json:"action"`
	Note   *string `json:"note"`
}

// Job, bir müşteri siparişinin üretim aşamaları boyunca izlenen kaydıdır.
// Aşama alt kayıtları serbest şemalıdır; şekillerini yazan operasyon belirler.
type Job struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	CustomerID   string         `json:"customerId"`
	CustomerName string         `json:"customerName"`
	Status       string         `json:"status"`
	StartType    string         `json:"startType"`
	Measure      map[string]any `json:"measure"`
	Offer        map[string]any `json:"offer"`
	Approval     map[string]any `json:"approval"`
	Stock        map[string]any `json:"stock"`
	Production   map[string]any `json:"production"`
	Assembly     map[string]any `json:"assembly"`
	Finance      map[string]any `json:"finance"`
	Logs         []LogEntry     `json:"logs"`
}

// AppendLog, işin log dizisine tek kayıt ekler. Loglar hiç budanmaz.
func (j *Job) AppendLog(at, action string, note *string) {
	j.Logs = append(j.Logs, LogEntry{At: at, Action: action, Note: note})
}
