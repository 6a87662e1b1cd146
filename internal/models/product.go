package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Details     []string  `json:"details,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	New         bool      `json:"new,omitempty"`
	Bestseller  bool      `json:"bestseller,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
