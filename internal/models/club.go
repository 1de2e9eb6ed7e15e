package models

import "time"

// Club represents a sports club in the directory.
//
// A club is submitted by an anonymous visitor and starts out unvalidated.
// An admin either validates it (it becomes publicly listed and permanent)
// or rejects it (the row and its reviews are deleted).
type Club struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Municipality string    `json:"municipality"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	OrgNumber    string    `json:"orgNumber"`
	Description  string    `json:"description"`
	Validated    bool      `json:"validated"`
	CreatedAt    time.Time `json:"createdAt"`

	// Derived from the reviews table at read time, not stored on the clubs row.
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// ClubCreateRequest is the payload for submitting a new club.
// Any validated value supplied by the caller is ignored; submissions
// always start unvalidated.
type ClubCreateRequest struct {
	Name         string `json:"name" validate:"required"`
	Municipality string `json:"municipality" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	OrgNumber    string `json:"orgNumber" validate:"required"`
	Description  string `json:"description"`
}
