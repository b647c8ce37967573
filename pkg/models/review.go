package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is embedded in a souvenir document. Immutable once appended.
// The id is a generated uuid rather than a store-native ObjectID so it stays
// stable across export/import of the catalog.
type Review struct {
	ID         string    `json:"id" bson:"id"`
	Login      string    `json:"login" bson:"login" validate:"required,min=2,max=100"`
	Date       time.Time `json:"date" bson:"date"`
	Text       string    `json:"text" bson:"text" validate:"max=2000"`
	Rating     float64   `json:"rating" bson:"rating" validate:"gte=0"`
	IsApproved bool      `json:"is_approved" bson:"is_approved"`
}

// IsPositive checks if the review is positive (4 stars and up)
func (r *Review) IsPositive() bool {
	return r.Rating >= 4
}

// IsNegative checks if the review is negative (2 stars and below)
func (r *Review) IsNegative() bool {
	return r.Rating <= 2
}

type AddReviewRequest struct {
	Login  string  `json:"login" validate:"required,min=2,max=100"`
	Rating float64 `json:"rating" validate:"gte=0"`
	Text   string  `json:"text" validate:"max=2000"`
}

func (req *AddReviewRequest) Validate() error {
	return validateStruct(req)
}

// ToReview stamps the server-side fields: generated id, creation time,
// moderation gate closed.
func (req *AddReviewRequest) ToReview() Review {
	return Review{
		ID:         uuid.NewString(),
		Login:      req.Login,
		Date:       time.Now().UTC(),
		Text:       req.Text,
		Rating:     req.Rating,
		IsApproved: false,
	}
}
