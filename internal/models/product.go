// internal/models/product.go
package models

// Product is a catalog record. Products are loaded once and never change while the process runs.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Image       string  `json:"image" yaml:"image"`
	Description string  `json:"description" yaml:"description"`
	Rating      float64 `json:"rating" yaml:"rating"`
}
