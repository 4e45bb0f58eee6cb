package catalog

import "time"

type Product struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	VideoURL      *string  `json:"videoUrl,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviewsCount"`
	SellerID      string   `json:"sellerId"`
	Stock         int      `json:"stock"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// EffectivePrice is the price a buyer actually pays: the discount price when one
// is set, the base price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

type CreateProductRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	VideoURL      *string  `json:"videoUrl,omitempty"`
	SellerID      string   `json:"sellerId"`
	Stock         int      `json:"stock"`
}

type UpdateProductRequest struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Images        *[]string `json:"images,omitempty"`
	VideoURL      *string   `json:"videoUrl,omitempty"`
	Stock         *int      `json:"stock,omitempty"`
}
