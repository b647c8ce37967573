package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/souvenirshop/go-api/pkg/models"
)

// GetCart returns the cart for login, or ErrNotFound when none exists.
func (s *Store) GetCart(ctx context.Context, login string) (*models.Cart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.D{{Key: "login", Value: login}}).Decode(&cart)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get cart for %s", login), err)
	}
	return &cart, nil
}

// PutCart replaces the cart document for login, creating it when missing.
// The unique login index guards racing upserts from creating two carts for
// the same user.
func (s *Store) PutCart(ctx context.Context, login string, items []models.CartItem) (*models.Cart, error) {
	cart := &models.Cart{Login: login, Items: items}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	filter := bson.D{{Key: "login", Value: login}}
	opts := options.Replace().SetUpsert(true)
	result, err := s.carts.ReplaceOne(ctx, filter, cart, opts)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("put cart for %s", login), err)
	}
	if oid, ok := result.UpsertedID.(bson.ObjectID); ok {
		cart.ID = oid
	}

	return cart, nil
}

// CartSum computes the total cost of the cart for login: every line item is
// joined against the catalog by souvenir id and price × amount is summed
// over the joined rows. The join is inner, so an item whose souvenir has
// been deleted contributes nothing rather than failing the call.
//
// A missing cart is ErrNotFound; a cart that exists but holds no resolvable
// items sums to 0. The existence check and the aggregation are two round
// trips, the only multi-trip read in this package.
func (s *Store) CartSum(ctx context.Context, login string) (float64, error) {
	if _, err := s.GetCart(ctx, login); err != nil {
		return 0, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "login", Value: login}}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: souvenirsCollection},
			{Key: "localField", Value: "items.souvenir_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "souvenir"},
		}}},
		bson.D{{Key: "$unwind", Value: "$souvenir"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$souvenir.price", "$items.amount"}},
			}}}},
		}}},
	}

	cursor, err := s.carts.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, wrapErr(fmt.Sprintf("sum cart for %s", login), err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, wrapErr("decode cart sum", err)
	}

	// Empty cart or nothing but dangling references: no groups, total 0.
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
