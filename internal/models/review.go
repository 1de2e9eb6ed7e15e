package models

import "time"

// Review is a visitor rating left on a club. Reviews are never updated or
// deleted directly; they only go away when their club is rejected (the
// reviews table has an ON DELETE CASCADE foreign key to clubs).
type Review struct {
	ID         int       `json:"id"`
	ClubID     int       `json:"clubId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewCreateRequest is the payload for submitting a review.
// The club id comes from the URL path, not the body.
type ReviewCreateRequest struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment"`
	AuthorName string `json:"authorName" validate:"required"`
}
