package model

import "time"

type BusinessInfo struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	VATNumber string    `json:"vatNumber,omitempty" bson:"vatNumber,omitempty"`
	Website   string    `json:"website,omitempty" bson:"website,omitempty"`
	Currency  string    `json:"currency" bson:"currency"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
