// Package model holds the storefront domain types shared by the API client,
// services and HTTP layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Tag labels products across categories.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog entry as served by the remote catalog API.
// OriginalPrice and DiscountPercentage are optional.
type Product struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Slug               string              `json:"slug"`
	Description        string              `json:"description,omitempty"`
	ShortDescription   string              `json:"short_description,omitempty"`
	Price              decimal.Decimal     `json:"price"`
	OriginalPrice      decimal.NullDecimal `json:"original_price"`
	DiscountPercentage decimal.NullDecimal `json:"discount_percentage"`
	ImageURL           string              `json:"display_image,omitempty"`
	Category           *Category           `json:"category,omitempty"`
	Tags               []Tag               `json:"tags,omitempty"`
	BadgeText          string              `json:"badge_text,omitempty"`
	Features           string              `json:"features,omitempty"`
	WhatIncluded       string              `json:"what_included,omitempty"`
	PerfectFor         string              `json:"perfect_for,omitempty"`
	IsActive           bool                `json:"is_active"`
	IsFeatured         bool                `json:"is_featured"`
	CreatedAt          time.Time           `json:"created_at,omitempty"`
	UpdatedAt          time.Time           `json:"updated_at,omitempty"`
	// RelatedProducts is only filled by the catalog's detail endpoint.
	RelatedProducts []Product `json:"related_products,omitempty"`
}

// PriceTag is the text a product card publishes as its price, used by the
// listing price filter. It is the shortest exact decimal form: 499.00 is "499".
func (p Product) PriceTag() string {
	return p.Price.String()
}

// CategorySlug returns the product's category slug or "".
func (p Product) CategorySlug() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Slug
}

// HasTag reports whether the product carries a tag with the given slug.
func (p Product) HasTag(slug string) bool {
	for _, t := range p.Tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

// SiteSettings is the storefront's singleton configuration.
type SiteSettings struct {
	SiteName        string            `json:"site_name"`
	SiteTagline     string            `json:"site_tagline,omitempty"`
	WhatsAppNumber  string            `json:"whatsapp_number,omitempty"`
	InstagramURL    string            `json:"instagram_url,omitempty"`
	YouTubeURL      string            `json:"youtube_url,omitempty"`
	FooterLinks     map[string]string `json:"footer_links,omitempty"`
	MetaDescription string            `json:"meta_description,omitempty"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderFailed, OrderCancelled:
		return true
	}
	return false
}

// OrderDraft is what the storefront submits to create an order.
type OrderDraft struct {
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	CustomerName   string              `json:"customer_name,omitempty"`
	ProductID      int64               `json:"product"`
	Quantity       int                 `json:"quantity"`
	BumpOfferAdded bool                `json:"bump_offer_added"`
	BumpOfferPrice decimal.NullDecimal `json:"bump_offer_price"`
}

// Order is an order as stored by the remote API.
type Order struct {
	ID             int64           `json:"id"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	CustomerName   string          `json:"customer_name,omitempty"`
	Product        *Product        `json:"product,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	BumpOfferAdded bool            `json:"bump_offer_added"`
	BumpOfferPrice decimal.Decimal `json:"bump_offer_price"`
	Status         OrderStatus     `json:"status"`
	PaymentID      string          `json:"payment_id,omitempty"`
	DownloadLink   string          `json:"download_link,omitempty"`
	DownloadSent   bool            `json:"download_sent"`
	CreatedAt      time.Time       `json:"created_at,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at,omitempty"`
}

// StatusUpdate is a partial order update. Empty fields are left unchanged.
type StatusUpdate struct {
	Status       OrderStatus `json:"status,omitempty"`
	PaymentID    string      `json:"payment_id,omitempty"`
	DownloadLink string      `json:"download_link,omitempty"`
}

// OrderTotal is unit × quantity plus the bump offer when it was taken.
func OrderTotal(unit decimal.Decimal, quantity int, bumpAdded bool, bumpPrice decimal.Decimal) decimal.Decimal {
	total := unit.Mul(decimal.NewFromInt(int64(quantity)))
	if bumpAdded {
		total = total.Add(bumpPrice)
	}
	return total
}
