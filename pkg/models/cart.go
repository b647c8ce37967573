package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem references a catalog entry by id. The reference is weak: a deleted
// souvenir leaves the item dangling, and dangling items are skipped by the
// cost aggregation rather than treated as an error.
type CartItem struct {
	SouvenirID bson.ObjectID `json:"souvenir_id" bson:"souvenir_id" validate:"required"`
	Amount     int           `json:"amount" bson:"amount" validate:"gte=0"`
}

// Cart holds a user's line items. One cart per login, enforced by a unique
// index on the login field.
type Cart struct {
	ID    bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Login string        `json:"login" bson:"login" validate:"required,min=2,max=100"`
	Items []CartItem    `json:"items" bson:"items" validate:"dive"`
}

type PutCartRequest struct {
	Items []CartItem `json:"items" validate:"dive"`
}

func (req *PutCartRequest) Validate() error {
	return validateStruct(req)
}
