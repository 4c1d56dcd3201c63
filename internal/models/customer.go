package models

type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Segment     string `json:"segment"`
	Location    string `json:"location"`
	Jobs        int    `json:"jobs"`
	Contact     string `json:"contact"`
	Deleted     bool   `json:"deleted"`
	AccountCode string `json:"accountCode"` // Cari kod: C-{yıl}-{4 hane}, müşteri seti içinde benzersiz
}
