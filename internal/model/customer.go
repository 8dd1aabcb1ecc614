package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CustomerStatusNew    = "new"
	CustomerStatusActive = "active"
	CustomerStatusVIP    = "VIP"
)

type Customer struct {
	ID                     string          `json:"id" bson:"_id"`
	Name                   string          `json:"name" bson:"name"`
	Email                  string          `json:"email,omitempty" bson:"email,omitempty"`
	Phone                  string          `json:"phone,omitempty" bson:"phone,omitempty"`
	Address                string          `json:"address,omitempty" bson:"address,omitempty"`
	City                   string          `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode             string          `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	Location               string          `json:"location,omitempty" bson:"location,omitempty"`
	JoinDate               string          `json:"joinDate,omitempty" bson:"joinDate,omitempty"`
	Status                 string          `json:"status" bson:"status"`
	TotalSpent             decimal.Decimal `json:"totalSpent" bson:"totalSpent"`
	TotalOrders            int             `json:"totalOrders" bson:"totalOrders"`
	LastOrder              *time.Time      `json:"lastOrder,omitempty" bson:"lastOrder,omitempty"`
	Birthday               string          `json:"birthday,omitempty" bson:"birthday,omitempty"`
	PreferredContactMethod string          `json:"preferredContactMethod,omitempty" bson:"preferredContactMethod,omitempty"`
	ReferredBy             string          `json:"referredBy,omitempty" bson:"referredBy,omitempty"`
	Notes                  string          `json:"notes,omitempty" bson:"notes,omitempty"`
	LoyaltyPoints          int             `json:"loyaltyPoints" bson:"loyaltyPoints"`
	IsBlocked              bool            `json:"isBlocked" bson:"isBlocked"`
	CreatedAt              time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt" bson:"updatedAt"`
}
