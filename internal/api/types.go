package api

import "strings"

// NoVariationKey is the sentinel variation key for products sold without
// RAM/storage variants.
const NoVariationKey = "null"

// Product mirrors the catalog payload returned by /products.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Image       string      `json:"image"`
	InStock     bool        `json:"in_stock"`
	Variations  []Variation `json:"variations"`
}

// Variation is a RAM/storage variant of a product with its own price.
type Variation struct {
	RAM     string  `json:"ram"`
	Storage string  `json:"storage"`
	Price   float64 `json:"price"`
}

// Key derives the cart/compare variation key for v.
func (v *Variation) Key() string {
	if v == nil {
		return NoVariationKey
	}
	ram := strings.TrimSpace(v.RAM)
	storage := strings.TrimSpace(v.Storage)
	if ram == "" && storage == "" {
		return NoVariationKey
	}
	return ram + " - " + storage
}

// Brand mirrors /brands entries.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category mirrors /categories entries.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the account payload embedded in auth responses.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the payload returned by login and signup.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CartItem is the wire form of a single cart line.
type CartItem struct {
	ProductID    string  `json:"product_id"`
	VariationKey string  `json:"variation_key"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// CartSnapshot mirrors GET /cart.
type CartSnapshot struct {
	Items []CartItem `json:"items"`
}

// WishlistItem is a product summary on the server-owned wishlist.
type WishlistItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// OrderItem is a single line of a placed order.
type OrderItem struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	VariationKey string  `json:"variation_key"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Order mirrors /orders entries.
type Order struct {
	ID        string      `json:"id"`
	Reference string      `json:"reference"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Address   string      `json:"address"`
	CreatedAt string      `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// PaymentInit mirrors POST /payments/mpesa/initiate.
type PaymentInit struct {
	OrderReference    string `json:"order_reference"`
	CheckoutRequestID string `json:"checkout_request_id"`
}

// PaymentStatus mirrors GET /payments/status/:orderReference.
type PaymentStatus struct {
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id"`
	FailureReason string `json:"failure_reason"`
}
