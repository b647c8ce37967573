package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CountryStats struct {
	Country       string  `json:"country" bson:"_id"`
	SouvenirCount int     `json:"souvenir_count" bson:"souvenir_count"`
	AvgRating     float64 `json:"avg_rating" bson:"avg_rating"`
	AvgPrice      float64 `json:"avg_price" bson:"avg_price"`
	TotalStock    int     `json:"total_stock" bson:"total_stock"`
	ReviewCount   int     `json:"review_count" bson:"review_count"`
}

type CountryStatsResult struct {
	Countries      []CountryStats `json:"countries"`
	TotalSouvenirs int            `json:"total_souvenirs"`
}

// GetCountryStats groups the catalog by country of origin and reports
// per-country counts, averages and stock totals, best countries first.
func (s *Store) GetCountryStats(ctx context.Context) (*CountryStatsResult, error) {
	pipeline := mongo.Pipeline{
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$country"},
				{Key: "souvenir_count", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "avg_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
				{Key: "avg_price", Value: bson.D{{Key: "$avg", Value: "$price"}}},
				{Key: "total_stock", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
				{Key: "review_count", Value: bson.D{{Key: "$sum", Value: bson.D{
					{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}}},
				}}}},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "souvenir_count", Value: 1},
				{Key: "avg_rating", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_rating", 2}}}},
				{Key: "avg_price", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_price", 2}}}},
				{Key: "total_stock", Value: 1},
				{Key: "review_count", Value: 1},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{{Key: "avg_rating", Value: -1}}},
		},
	}

	cursor, err := s.souvenirs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("country stats", err)
	}
	defer cursor.Close(ctx)

	var countries []CountryStats
	if err := cursor.All(ctx, &countries); err != nil {
		return nil, wrapErr("decode country stats", err)
	}

	total := 0
	for _, country := range countries {
		total += country.SouvenirCount
	}

	result := &CountryStatsResult{
		Countries:      countries,
		TotalSouvenirs: total,
	}

	return result, nil
}
