package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Customer is the billing contact captured at checkout. It is embedded in
// the order row and immutable afterwards.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Line is one purchased quantity of one event. Price is the unit price
// snapshot carried over from the cart, not a catalog lookup.
type Line struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	VendorID  string `json:"vendor_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// Order is the durable record of a completed checkout. TotalPrice as
// stored is the buyer's grand total; the visibility engine may present a
// recomputed subset total to vendors without ever writing it back.
type Order struct {
	ID         string    `json:"id"`
	BuyerID    string    `json:"buyer_id"`
	Status     Status    `json:"status"`
	TotalPrice int       `json:"total_price"`
	Customer   Customer  `json:"customer_details"`
	CreatedAt  time.Time `json:"created_at"`
	Lines      []Line    `json:"order_items"`
}
