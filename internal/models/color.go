package models

type Color struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
