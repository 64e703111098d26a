// internal/domain/catalog/listing.go
package catalog

import (
	"sort"
	"strings"
)

// ListRequest represents product list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Category  string `form:"category"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
	MinPrice  int64  `form:"min_price"`
	MaxPrice  int64  `form:"max_price"`
	Featured  *bool  `form:"featured"`
}

// ProductList represents a filtered product page with pagination
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ApplyListing filters, sorts and paginates a fetched product list. Every
// list surface (catalog page, search, featured strip) goes through this
// one implementation. Inactive products are always excluded.
func ApplyListing(products []Product, req *ListRequest) *ProductList {
	filtered := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(req.Search))

	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if req.Category != "" && !strings.EqualFold(p.Category, req.Category) {
			continue
		}
		if req.MinPrice > 0 && p.Price < req.MinPrice {
			continue
		}
		if req.MaxPrice > 0 && p.Price > req.MaxPrice {
			continue
		}
		if req.Featured != nil && p.IsFeatured != *req.Featured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, req.SortBy, req.SortOrder)

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ProductList{
		Products: filtered[start:end],
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1 && total > 0,
		},
	}
}

func sortProducts(products []Product, sortBy, sortOrder string) {
	ascending := !strings.EqualFold(sortOrder, "desc")

	var less func(a, b *Product) bool
	switch sortBy {
	case "price":
		less = func(a, b *Product) bool { return a.Price < b.Price }
	case "name":
		less = func(a, b *Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	default: // created_at
		less = func(a, b *Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if ascending {
			return less(&products[i], &products[j])
		}
		return less(&products[j], &products[i])
	})
}
