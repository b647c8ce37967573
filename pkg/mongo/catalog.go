package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/souvenirshop/go-api/pkg/models"
)

// PurgeResult reports the outcome of the out-of-stock purge.
type PurgeResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deleted_count"`
}

func (s *Store) findSouvenirs(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) ([]models.Souvenir, error) {
	cursor, err := s.souvenirs.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapErr("find souvenirs", err)
	}
	defer cursor.Close(ctx)

	var souvenirs []models.Souvenir
	if err := cursor.All(ctx, &souvenirs); err != nil {
		return nil, wrapErr("decode souvenirs", err)
	}

	return souvenirs, nil
}

// All returns the full catalog, in no particular order.
func (s *Store) All(ctx context.Context) ([]models.Souvenir, error) {
	return s.findSouvenirs(ctx, bson.D{})
}

// Get returns a single souvenir by id.
func (s *Store) Get(ctx context.Context, id bson.ObjectID) (*models.Souvenir, error) {
	var souvenir models.Souvenir
	err := s.souvenirs.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&souvenir)
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get souvenir %s", id.Hex()), err)
	}
	return &souvenir, nil
}

// Create inserts already-validated souvenir documents.
func (s *Store) Create(ctx context.Context, souvenirs []*models.Souvenir) ([]*models.Souvenir, error) {
	if _, err := s.souvenirs.InsertMany(ctx, souvenirs); err != nil {
		return nil, wrapErr("create souvenirs", err)
	}
	return souvenirs, nil
}

// Cheap returns souvenirs priced at or below maxPrice. The boundary is
// inclusive: a souvenir priced exactly at maxPrice is part of the result.
func (s *Store) Cheap(ctx context.Context, maxPrice float64) ([]models.Souvenir, error) {
	filter := bson.D{{Key: "price", Value: bson.D{{Key: "$lte", Value: maxPrice}}}}
	return s.findSouvenirs(ctx, filter)
}

// TopRated returns the n highest-rated souvenirs, rating descending.
// Order among equal ratings is whatever the store returns and is not
// deterministic. n of zero or less yields an empty result.
func (s *Store) TopRated(ctx context.Context, n int) ([]models.Souvenir, error) {
	if n <= 0 {
		return []models.Souvenir{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(n))
	return s.findSouvenirs(ctx, bson.D{}, opts)
}

// ByTag returns the name/image/price projection of every souvenir whose tag
// set contains tag, matched exactly and case-sensitively. The document id is
// excluded from the projection, so callers never see it.
func (s *Store) ByTag(ctx context.Context, tag string) ([]models.SouvenirSummary, error) {
	filter := bson.D{{Key: "tags", Value: tag}}
	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 0},
		{Key: "name", Value: 1},
		{Key: "image", Value: 1},
		{Key: "price", Value: 1},
	})

	cursor, err := s.souvenirs.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr("find souvenirs by tag", err)
	}
	defer cursor.Close(ctx)

	var summaries []models.SouvenirSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, wrapErr("decode souvenir summaries", err)
	}

	return summaries, nil
}

// Count returns how many souvenirs match the filter: exact country, rating
// at least MinRating, price at most MaxPrice. The filter shape lines up with
// the (country, rating, price) compound index, so the store answers from the
// index without materializing documents.
func (s *Store) Count(ctx context.Context, f models.CountFilter) (int64, error) {
	filter := bson.D{
		{Key: "country", Value: f.Country},
		{Key: "rating", Value: bson.D{{Key: "$gte", Value: f.MinRating}}},
		{Key: "price", Value: bson.D{{Key: "$lte", Value: f.MaxPrice}}},
	}

	count, err := s.souvenirs.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapErr("count souvenirs", err)
	}
	return count, nil
}

// Search matches substr case-insensitively against souvenir names. The empty
// substring matches everything.
func (s *Store) Search(ctx context.Context, substr string) ([]models.Souvenir, error) {
	filter := bson.D{{Key: "name", Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(substr)},
		{Key: "$options", Value: "i"},
	}}}
	return s.findSouvenirs(ctx, filter)
}

// DiscussedSince returns souvenirs whose first review was written on or
// after t. The predicate is positional on reviews[0], not "any review on or
// after t"; a souvenir with no reviews never matches because the path is
// absent.
func (s *Store) DiscussedSince(ctx context.Context, t time.Time) ([]models.Souvenir, error) {
	filter := bson.D{{Key: "reviews.0.date", Value: bson.D{{Key: "$gte", Value: t}}}}
	return s.findSouvenirs(ctx, filter)
}

// PurgeOutOfStock deletes every souvenir whose stock count is exactly zero.
// Idempotent: with nothing left at amount 0 the call reports a deleted count
// of 0, never an error.
func (s *Store) PurgeOutOfStock(ctx context.Context) (*PurgeResult, error) {
	result, err := s.souvenirs.DeleteMany(ctx, bson.D{{Key: "amount", Value: 0}})
	if err != nil {
		return nil, wrapErr("purge out-of-stock souvenirs", err)
	}

	return &PurgeResult{
		Acknowledged: result.Acknowledged,
		DeletedCount: result.DeletedCount,
	}, nil
}

// AddReview appends a review to a souvenir and refreshes the derived rating.
//
// Two round trips. The first is an atomic array push, so concurrent callers
// cannot lose each other's reviews; a MatchedCount of zero means the id does
// not resolve and the call fails with ErrNotFound before touching the
// rating. The second is a pipeline update that sets rating to the mean of
// the review ratings inside the store, a compute-and-set the store applies
// against the document state it holds at that moment. The legacy shape of
// this operation re-read the reviews and wrote the average back from the
// client; folding the recompute into the update means a stale average can no
// longer be persisted, though the window between append and recompute is
// still observable by readers.
func (s *Store) AddReview(ctx context.Context, id bson.ObjectID, req *models.AddReviewRequest) (*models.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	review := req.ToReview()

	push := bson.D{{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}}}
	result, err := s.souvenirs.UpdateByID(ctx, id, push)
	if err != nil {
		return nil, wrapErr("append review", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("append review: souvenir %s: %w", id.Hex(), ErrNotFound)
	}

	// rating = avg(reviews.rating), coalesced to 0 so the field can never
	// become null for an empty review list.
	recompute := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$avg", Value: "$reviews.rating"}},
				0.0,
			}}}},
		}}},
	}
	if _, err := s.souvenirs.UpdateByID(ctx, id, recompute); err != nil {
		return nil, wrapErr("recompute rating", err)
	}

	return &review, nil
}
