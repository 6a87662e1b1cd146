package models

// CartItem is a single client-side cart line. Cart contents live entirely on
// the client until checkout captures them into an Order, so a cart item has
// no server identity of its own.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

// CreateCheckoutRequest is the body of POST /api/checkout. AmountTotal is the
// client-computed tax-inclusive total in major units.
type CreateCheckoutRequest struct {
	CartItems   []CartItem `json:"cartItems"`
	AmountTotal float64    `json:"amountTotal"`
}

type CreateCheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// VerifyPaymentRequest is the body of POST /api/payments/verify. Status is an
// optional client override; only "cancelled" is honored.
type VerifyPaymentRequest struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status,omitempty"`
}
