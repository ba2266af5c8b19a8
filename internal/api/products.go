package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Product is the single client-side shape for catalog items. Every backend
// payload variant is folded into it here and nowhere else.
type Product struct {
	Name        string
	Description string
	DetailURL   string
	Price       string
	ImageURL    string
}

// productRaw lists every key spelling the backend has shipped for product
// payloads. The search pipeline emits link/image/thumbnail style keys while
// the chat responder emits detail_url/image_url; both land here. Add new
// spellings to this table only.
type productRaw struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Merchant    string `json:"merchant"`
	Source      string `json:"source"`
	DetailURL   string `json:"detail_url"`
	DetailURL2  string `json:"detailUrl"`
	Link        string `json:"link"`
	ProductLink string `json:"product_link"`
	Price       any    `json:"price"`
	ImageURL    string `json:"image_url"`
	ImageURL2   string `json:"imageUrl"`
	Image       string `json:"image"`
	Thumbnail   string `json:"thumbnail"`
}

func (p productRaw) normalize() Product {
	return Product{
		Name:        firstNonEmpty(p.Name, p.Title),
		Description: firstNonEmpty(p.Description, p.Merchant, p.Source),
		DetailURL:   firstNonEmpty(p.DetailURL, p.DetailURL2, p.ProductLink, p.Link),
		Price:       priceText(p.Price),
		ImageURL:    firstNonEmpty(p.ImageURL, p.ImageURL2, p.Image, p.Thumbnail),
	}
}

// priceText keeps prices as decimal text. The backend sends either a
// preformatted string ("$24.99") or a bare JSON number.
func priceText(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		if p == float64(int64(p)) {
			return strconv.FormatInt(int64(p), 10)
		}
		return strconv.FormatFloat(p, 'f', 2, 64)
	case json.Number:
		return p.String()
	default:
		return ""
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// ─── recommended_products ───────────────────────────────────────────────────

// Recommendation is the normalized payload of a recommended_products event.
type Recommendation struct {
	Products []Product
	Total    int
}

// recommendationRaw covers the envelope variants: a bare array of products,
// or an object carrying the list plus a total under metadata or at top level.
type recommendationRaw struct {
	Products []productRaw `json:"products"`
	Total    int          `json:"total_products"`
	Metadata struct {
		TotalProducts int `json:"total_products"`
	} `json:"metadata"`
}

// normalizeRecommendation folds whatever shape the backend sent into a
// Recommendation. Unrecognized shapes pass through untouched so the event
// log can still display them generically.
func normalizeRecommendation(data any) any {
	encoded, err := json.Marshal(data)
	if err != nil {
		return data
	}

	var items []productRaw
	if err := json.Unmarshal(encoded, &items); err == nil {
		rec := Recommendation{Total: len(items)}
		for _, it := range items {
			rec.Products = append(rec.Products, it.normalize())
		}
		return rec
	}

	var raw recommendationRaw
	if err := json.Unmarshal(encoded, &raw); err == nil && len(raw.Products) > 0 {
		rec := Recommendation{Total: raw.Total}
		if rec.Total == 0 {
			rec.Total = raw.Metadata.TotalProducts
		}
		if rec.Total == 0 {
			rec.Total = len(raw.Products)
		}
		for _, it := range raw.Products {
			rec.Products = append(rec.Products, it.normalize())
		}
		return rec
	}

	return data
}
