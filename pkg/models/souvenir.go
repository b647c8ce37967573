package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Souvenir is a catalog entry. Reviews are append-only and kept in insertion
// order: reviews[0] is always the earliest review. Rating is derived — it is
// recomputed from the review list after every append and stays 0 while the
// souvenir has no reviews.
type Souvenir struct {
	ID       bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string        `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Tags     []string      `json:"tags" bson:"tags" validate:"dive,min=1,max=50"`
	Reviews  []Review      `json:"reviews" bson:"reviews"`
	Image    string        `json:"image" bson:"image"`
	Price    float64       `json:"price" bson:"price" validate:"gte=0"`
	Amount   int           `json:"amount" bson:"amount" validate:"gte=0"`
	Country  string        `json:"country" bson:"country" validate:"required,min=2,max=100"`
	Rating   float64       `json:"rating" bson:"rating" validate:"gte=0"`
	IsRecent bool          `json:"is_recent" bson:"is_recent"`
}

// SouvenirSummary is the tag-listing projection: name, image and price only.
// The document id is deliberately never part of this shape.
type SouvenirSummary struct {
	Name  string  `json:"name" bson:"name"`
	Image string  `json:"image" bson:"image"`
	Price float64 `json:"price" bson:"price"`
}

// CountFilter narrows the catalog count: exact country, rating at least
// MinRating, price at most MaxPrice.
type CountFilter struct {
	Country   string  `json:"country" form:"country" validate:"required"`
	MinRating float64 `json:"rating" form:"rating" validate:"gte=0"`
	MaxPrice  float64 `json:"price" form:"price" validate:"gte=0"`
}

func (f *CountFilter) Validate() error {
	return validateStruct(f)
}

type CreateSouvenirRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=200"`
	Tags     []string `json:"tags" validate:"dive,min=1,max=50"`
	Image    string   `json:"image"`
	Price    float64  `json:"price" validate:"gte=0"`
	Amount   int      `json:"amount" validate:"gte=0"`
	Country  string   `json:"country" validate:"required,min=2,max=100"`
	IsRecent bool     `json:"is_recent"`
}

func (req *CreateSouvenirRequest) Validate() error {
	return validateStruct(req)
}

// ToSouvenir builds a fresh catalog document: empty review list, rating 0.
func (req *CreateSouvenirRequest) ToSouvenir() *Souvenir {
	souvenir := &Souvenir{
		ID:       bson.NewObjectID(),
		Name:     req.Name,
		Tags:     req.Tags,
		Reviews:  []Review{},
		Image:    req.Image,
		Price:    req.Price,
		Amount:   req.Amount,
		Country:  req.Country,
		Rating:   0,
		IsRecent: req.IsRecent,
	}
	if souvenir.Tags == nil {
		souvenir.Tags = []string{}
	}
	return souvenir
}
