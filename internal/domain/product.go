package domain

// Product is a catalog product after the backend client has normalized the
// upstream field names. Available is the stock ceiling at add-to-cart time.
type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available int     `json:"available"`
	Image     string  `json:"image"`
}
