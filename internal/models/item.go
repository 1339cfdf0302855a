package models

import "github.com/jinzhu/gorm"

// PantryItem represents a single item in a user's pantry.
// Names are stored normalized (trimmed, lower-cased). Duplicate names may
// coexist for the same owner; lookups take matches in store order.
type PantryItem struct {
	gorm.Model
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	OwnerID string  `json:"ownerId" gorm:"index"`
}
