package model

import "time"

type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
)

// Elevated reports whether the role is exempt from ownership checks.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleAccountant
}

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin || r == RoleAccountant
}

type User struct {
	ID                int64      `json:"id"`
	FName             string     `json:"fname"`
	MName             string     `json:"mname,omitempty"`
	SName             string     `json:"sname"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	DateOfBirth       string     `json:"date_of_birth,omitempty"`
	PPSNo             string     `json:"ppsno,omitempty"`
	IDImageURL        string     `json:"id_image_url,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	AddressLine1      string     `json:"address_line1,omitempty"`
	AddressLine2      string     `json:"address_line2,omitempty"`
	City              string     `json:"city,omitempty"`
	State             string     `json:"state,omitempty"`
	Country           string     `json:"country,omitempty"`
	TaxStatus         string     `json:"tax_status,omitempty"`
	MaritalStatus     string     `json:"marital_status,omitempty"`
	PostalCode        string     `json:"postal_code,omitempty"`
	Occupation        string     `json:"occupation,omitempty"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	SubscriptionLevel string     `json:"subscription_level,omitempty"`
	AccountStatus     string     `json:"account_status,omitempty"`
	IsAutoRenew       bool       `json:"is_auto_renew"`
	PaymentMethod     string     `json:"payment_method,omitempty"`
	RenewalDate       string     `json:"renewal_date,omitempty"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
