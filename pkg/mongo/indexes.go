package mongo

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Souvenirs Collection Indexes
	// Index 1: Compound index serving the filtered count. Country is the
	// equality prefix; rating and price are the range fields, in that
	// order, so the count resolves from the index without a full scan.
	{
		CollectionName: souvenirsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "country", Value: 1},
				{Key: "rating", Value: 1},
				{Key: "price", Value: 1},
			},
			Options: options.Index().SetName("idx_country_rating_price"),
		},
	},
	// Index 2: Single-field index on tags for the tag listing
	{
		CollectionName: souvenirsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_tags"),
		},
	},
	// Index 3: Rating sort for top-k listings
	{
		CollectionName: souvenirsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "rating", Value: -1}},
			Options: options.Index().SetName("idx_rating_desc"),
		},
	},
	// Index 4: First-review date for the discussed-since query
	{
		CollectionName: souvenirsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "reviews.0.date", Value: 1}},
			Options: options.Index().SetName("idx_first_review_date"),
		},
	},

	// Carts Collection Indexes
	// Index 5: One cart per login
	{
		CollectionName: cartsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_cart_login_unique"),
		},
	},
}

// EnsureIndexes declares the required index set against db. Safe to call on
// every startup, index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	log.Println("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		collection := db.Collection(idxConfig.CollectionName)

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			log.Printf("Error creating index on collection %s: %v",
				idxConfig.CollectionName, err)
			return err
		}

		log.Printf("✓ Created index '%s' on collection '%s'", indexName, idxConfig.CollectionName)
	}

	log.Println("All indexes created successfully!")
	return nil
}
