package mongo_test

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/souvenirshop/go-api/pkg/models"
	"github.com/souvenirshop/go-api/pkg/mongo"
)

func (suite *storeSuite) TestPutCartCreatesAndReplaces() {
	ctx := suite.T().Context()

	souvenir := randomSouvenir()
	suite.seedSouvenirs(souvenir)

	cart, err := suite.store.PutCart(ctx, "alice", []models.CartItem{
		{SouvenirID: souvenir.ID, Amount: 1},
	})
	suite.Require().NoError(err)
	suite.Len(cart.Items, 1)

	// a second put for the same login replaces, it never creates a twin
	cart, err = suite.store.PutCart(ctx, "alice", []models.CartItem{
		{SouvenirID: souvenir.ID, Amount: 3},
	})
	suite.Require().NoError(err)
	suite.Require().Len(cart.Items, 1)
	suite.Equal(3, cart.Items[0].Amount)

	stored, err := suite.store.GetCart(ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal([]models.CartItem{{SouvenirID: souvenir.ID, Amount: 3}}, stored.Items)
}

func (suite *storeSuite) TestCartSumJoinsCatalogPrices() {
	ctx := suite.T().Context()

	mug := randomSouvenir()
	mug.Price = 5
	magnet := randomSouvenir()
	magnet.Price = 2.5
	suite.seedSouvenirs(mug, magnet)

	_, err := suite.store.PutCart(ctx, "alice", []models.CartItem{
		{SouvenirID: mug.ID, Amount: 2},
		{SouvenirID: magnet.ID, Amount: 4},
	})
	suite.Require().NoError(err)

	total, err := suite.store.CartSum(ctx, "alice")
	suite.NoError(err)
	suite.InDelta(20.0, total, 1e-9)
}

func (suite *storeSuite) TestCartSumSkipsDanglingReferences() {
	ctx := suite.T().Context()

	mug := randomSouvenir()
	mug.Price = 5
	suite.seedSouvenirs(mug)

	_, err := suite.store.PutCart(ctx, "alice", []models.CartItem{
		{SouvenirID: mug.ID, Amount: 2},
		// this souvenir was never created, the item must contribute 0
		{SouvenirID: bson.NewObjectID(), Amount: 100},
	})
	suite.Require().NoError(err)

	total, err := suite.store.CartSum(ctx, "alice")
	suite.NoError(err)
	suite.InDelta(10.0, total, 1e-9)
}

func (suite *storeSuite) TestCartSumEmptyCartVersusMissingCart() {
	ctx := suite.T().Context()

	_, err := suite.store.PutCart(ctx, "alice", nil)
	suite.Require().NoError(err)

	// an existing cart with no items sums to zero
	total, err := suite.store.CartSum(ctx, "alice")
	suite.NoError(err)
	suite.Zero(total)

	// no cart at all is a different, reportable case
	_, err = suite.store.CartSum(ctx, "nobody")
	suite.ErrorIs(err, mongo.ErrNotFound)
}
