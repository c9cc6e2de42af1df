package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "all"

// PlaceholderImage is used whenever a product carries no image of its own.
const PlaceholderImage = "https://images.unsplash.com/photo-1515372039744-b8f02a3ae446?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&q=80"

type Product struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	ImageUrl    string          `json:"image_url,omitempty"`
	Featured    bool            `json:"featured"`
	InStock     bool            `json:"in_stock"`
	CreatedDate time.Time       `json:"created_date"`
}

// CartLineItem snapshots product name, image and price at add-time; later
// product edits never change an existing line item.
type CartLineItem struct {
	Id           string          `json:"id"`
	ProductId    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size,omitempty"`
	Color        string          `json:"color,omitempty"`
	UserEmail    string          `json:"user_email"`
	AddedAt      time.Time       `json:"added_at"`
}

// FilterCriteria is never persisted, it carries one catalog query.
type FilterCriteria struct {
	Search   string
	Category string
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
}

type CategoryFacet struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CartResponse struct {
	Items         []CartLineItem  `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	Url     string `json:"url"`
}
