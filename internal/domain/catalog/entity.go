// internal/domain/catalog/entity.go
package catalog

import "time"

// Company represents a tenant's public storefront profile
type Company struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	LogoURL        string `json:"logo_url"`
	Currency       string `json:"currency"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Instagram      string `json:"instagram,omitempty"`
	Address        string `json:"address,omitempty"`
}

// Product represents a catalog item as served by the dashboard API.
// Price is in minor units; Stock is the quantity available at fetch time
// and becomes the cart's stock ceiling snapshot when the item is added.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURLs   []string  `json:"image_urls"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// PrimaryImage returns the first product image, if any
func (p *Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// Review represents a customer review of the company
type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FAQ represents one frequently asked question entry
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
