package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryIncome is reserved: rows carrying it are hidden from
// unfiltered expense listings.
const CategoryIncome = "income"

type Expense struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	ReceiptImageURL string          `json:"receipt_image_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
