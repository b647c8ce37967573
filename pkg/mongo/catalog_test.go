package mongo_test

import (
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/souvenirshop/go-api/pkg/models"
	"github.com/souvenirshop/go-api/pkg/mongo"
)

func randomSouvenir() *models.Souvenir {
	return &models.Souvenir{
		ID:      bson.NewObjectID(),
		Name:    gofakeit.ProductName(),
		Tags:    []string{gofakeit.Word()},
		Reviews: []models.Review{},
		Image:   gofakeit.URL(),
		Price:   gofakeit.Price(1, 100),
		Amount:  gofakeit.Number(1, 50),
		Country: gofakeit.CountryAbr(),
	}
}

func (suite *storeSuite) TestAllReturnsEverything() {
	ctx := suite.T().Context()

	suite.seedSouvenirs(randomSouvenir(), randomSouvenir(), randomSouvenir())

	souvenirs, err := suite.store.All(ctx)
	suite.NoError(err)
	suite.Len(souvenirs, 3)
}

func (suite *storeSuite) TestCheapIncludesPriceBoundary() {
	ctx := suite.T().Context()

	cheap := randomSouvenir()
	cheap.Price = 5
	exact := randomSouvenir()
	exact.Price = 10
	expensive := randomSouvenir()
	expensive.Price = 10.01
	suite.seedSouvenirs(cheap, exact, expensive)

	souvenirs, err := suite.store.Cheap(ctx, 10)
	suite.NoError(err)

	suite.Len(souvenirs, 2)
	for _, s := range souvenirs {
		suite.LessOrEqual(s.Price, 10.0)
	}
}

func (suite *storeSuite) TestTopRatedSortsAndLimits() {
	ctx := suite.T().Context()

	for _, rating := range []float64{1, 4.5, 3, 5, 2} {
		s := randomSouvenir()
		s.Rating = rating
		suite.seedSouvenirs(s)
	}

	top, err := suite.store.TopRated(ctx, 3)
	suite.NoError(err)

	suite.Len(top, 3)
	suite.Equal(5.0, top[0].Rating)
	suite.Equal(4.5, top[1].Rating)
	suite.Equal(3.0, top[2].Rating)

	// asking for more than the catalog holds returns the whole catalog
	all, err := suite.store.TopRated(ctx, 50)
	suite.NoError(err)
	suite.Len(all, 5)

	// zero or negative limits yield nothing
	empty, err := suite.store.TopRated(ctx, 0)
	suite.NoError(err)
	suite.Empty(empty)
}

func (suite *storeSuite) TestByTagMatchesExactlyAndProjects() {
	ctx := suite.T().Context()

	tagged := randomSouvenir()
	tagged.Name = "Berlin mug"
	tagged.Tags = []string{"mug", "berlin"}
	tagged.Price = 9.99
	upper := randomSouvenir()
	upper.Tags = []string{"Mug"} // tag matching is case-sensitive
	substr := randomSouvenir()
	substr.Tags = []string{"mugs"} // no substring matching either
	suite.seedSouvenirs(tagged, upper, substr)

	summaries, err := suite.store.ByTag(ctx, "mug")
	suite.NoError(err)

	suite.Require().Len(summaries, 1)
	suite.Equal("Berlin mug", summaries[0].Name)
	suite.Equal(9.99, summaries[0].Price)
	suite.Equal(tagged.Image, summaries[0].Image)
}

func (suite *storeSuite) TestCountMatchesCompoundFilter() {
	ctx := suite.T().Context()

	first := randomSouvenir()
	first.Country = "FR"
	first.Rating = 4
	first.Price = 10
	second := randomSouvenir()
	second.Country = "FR"
	second.Rating = 2
	second.Price = 10
	third := randomSouvenir()
	third.Country = "DE"
	third.Rating = 5
	third.Price = 10
	suite.seedSouvenirs(first, second, third)

	count, err := suite.store.Count(ctx, models.CountFilter{Country: "FR", MinRating: 3, MaxPrice: 20})
	suite.NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.store.Count(ctx, models.CountFilter{Country: "IT", MinRating: 0, MaxPrice: 100})
	suite.NoError(err)
	suite.Equal(int64(0), count)
}

func (suite *storeSuite) TestSearchIsCaseInsensitiveSubstring() {
	ctx := suite.T().Context()

	tower := randomSouvenir()
	tower.Name = "Eiffel Tower figurine"
	mug := randomSouvenir()
	mug.Name = "Paris mug"
	suite.seedSouvenirs(tower, mug)

	found, err := suite.store.Search(ctx, "TOWER")
	suite.NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal("Eiffel Tower figurine", found[0].Name)

	// the empty substring matches the whole catalog
	everything, err := suite.store.Search(ctx, "")
	suite.NoError(err)
	suite.Len(everything, 2)

	// regex metacharacters in the query are treated literally
	none, err := suite.store.Search(ctx, ".*")
	suite.NoError(err)
	suite.Empty(none)
}

func (suite *storeSuite) TestDiscussedSinceUsesFirstReviewOnly() {
	ctx := suite.T().Context()

	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	fresh := randomSouvenir()
	fresh.Name = "fresh"
	fresh.Reviews = []models.Review{
		{ID: "r1", Login: "alice", Date: cutoff.AddDate(0, 1, 0), Rating: 4},
	}
	stale := randomSouvenir()
	stale.Reviews = []models.Review{
		{ID: "r2", Login: "bob", Date: cutoff.AddDate(0, -1, 0), Rating: 5},
		// a later review past the cutoff must not resurrect the souvenir
		{ID: "r3", Login: "carol", Date: cutoff.AddDate(0, 2, 0), Rating: 5},
	}
	unreviewed := randomSouvenir()
	suite.seedSouvenirs(fresh, stale, unreviewed)

	discussed, err := suite.store.DiscussedSince(ctx, cutoff)
	suite.NoError(err)

	suite.Require().Len(discussed, 1)
	suite.Equal("fresh", discussed[0].Name)
}

func (suite *storeSuite) TestPurgeOutOfStockIsIdempotent() {
	ctx := suite.T().Context()

	sold := randomSouvenir()
	sold.Amount = 0
	alsoSold := randomSouvenir()
	alsoSold.Amount = 0
	inStock := randomSouvenir()
	inStock.Amount = 7
	suite.seedSouvenirs(sold, alsoSold, inStock)

	result, err := suite.store.PurgeOutOfStock(ctx)
	suite.NoError(err)
	suite.True(result.Acknowledged)
	suite.Equal(int64(2), result.DeletedCount)

	// second call finds nothing at amount 0 and still succeeds
	result, err = suite.store.PurgeOutOfStock(ctx)
	suite.NoError(err)
	suite.Equal(int64(0), result.DeletedCount)

	remaining, err := suite.store.All(ctx)
	suite.NoError(err)
	suite.Len(remaining, 1)
}

func (suite *storeSuite) TestAddReviewAppendsAndRecomputesRating() {
	ctx := suite.T().Context()

	souvenir := randomSouvenir()
	suite.seedSouvenirs(souvenir)

	_, err := suite.store.AddReview(ctx, souvenir.ID, &models.AddReviewRequest{Login: "alice", Rating: 4, Text: "nice"})
	suite.Require().NoError(err)
	review, err := suite.store.AddReview(ctx, souvenir.ID, &models.AddReviewRequest{Login: "bob", Rating: 1})
	suite.Require().NoError(err)

	suite.NotEmpty(review.ID)
	suite.False(review.IsApproved)

	updated, err := suite.store.Get(ctx, souvenir.ID)
	suite.Require().NoError(err)

	suite.Require().Len(updated.Reviews, 2)
	// append order is preserved: first review stays first
	suite.Equal("alice", updated.Reviews[0].Login)
	suite.Equal("bob", updated.Reviews[1].Login)
	suite.InDelta(2.5, updated.Rating, 1e-9)
}

func (suite *storeSuite) TestAddReviewUnknownSouvenir() {
	ctx := suite.T().Context()

	_, err := suite.store.AddReview(ctx, bson.NewObjectID(), &models.AddReviewRequest{Login: "alice", Rating: 4})
	suite.ErrorIs(err, mongo.ErrNotFound)
}

func (suite *storeSuite) TestAddReviewRejectsNegativeRating() {
	ctx := suite.T().Context()

	souvenir := randomSouvenir()
	suite.seedSouvenirs(souvenir)

	_, err := suite.store.AddReview(ctx, souvenir.ID, &models.AddReviewRequest{Login: "alice", Rating: -1})
	suite.ErrorIs(err, models.ErrInvalid)

	unchanged, err := suite.store.Get(ctx, souvenir.ID)
	suite.Require().NoError(err)
	suite.Empty(unchanged.Reviews)
}

// Concurrent callers hit the append and the recompute as separate round
// trips. The append is an atomic array push, so no review may be lost; the
// recompute runs inside the store against current document state, so once
// all callers finish the rating must equal the mean over the full review
// set, whatever interleaving happened in between.
func (suite *storeSuite) TestAddReviewConcurrentCallers() {
	ctx := suite.T().Context()

	souvenir := randomSouvenir()
	suite.seedSouvenirs(souvenir)

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(rating float64) {
			defer wg.Done()
			_, err := suite.store.AddReview(ctx, souvenir.ID, &models.AddReviewRequest{
				Login:  gofakeit.Username(),
				Rating: rating,
			})
			errs <- err
		}(float64(i % 6))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.NoError(err)
	}

	updated, err := suite.store.Get(ctx, souvenir.ID)
	suite.Require().NoError(err)
	suite.Require().Len(updated.Reviews, writers)

	var sum float64
	for _, review := range updated.Reviews {
		sum += review.Rating
	}
	suite.InDelta(sum/writers, updated.Rating, 1e-9)
}

func (suite *storeSuite) TestGetCountryStats() {
	ctx := suite.T().Context()

	frMug := randomSouvenir()
	frMug.Country = "FR"
	frMug.Rating = 4
	frMug.Price = 10
	frMug.Amount = 5
	frTower := randomSouvenir()
	frTower.Country = "FR"
	frTower.Rating = 2
	frTower.Price = 30
	frTower.Amount = 1
	deStein := randomSouvenir()
	deStein.Country = "DE"
	deStein.Rating = 5
	deStein.Price = 20
	deStein.Amount = 2
	suite.seedSouvenirs(frMug, frTower, deStein)

	stats, err := suite.store.GetCountryStats(ctx)
	suite.Require().NoError(err)

	suite.Equal(3, stats.TotalSouvenirs)
	suite.Require().Len(stats.Countries, 2)
	// sorted by average rating, best country first
	suite.Equal("DE", stats.Countries[0].Country)
	suite.Equal("FR", stats.Countries[1].Country)
	suite.InDelta(3.0, stats.Countries[1].AvgRating, 1e-9)
	suite.Equal(6, stats.Countries[1].TotalStock)
}
