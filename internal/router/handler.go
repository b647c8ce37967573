package router

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/souvenirshop/go-api/pkg/ai"
	"github.com/souvenirshop/go-api/pkg/global"
	"github.com/souvenirshop/go-api/pkg/models"
	"github.com/souvenirshop/go-api/pkg/mongo"
)

// Catalog is the souvenir-side store surface the handlers consume.
type Catalog interface {
	Ping(ctx context.Context) error
	All(ctx context.Context) ([]models.Souvenir, error)
	Get(ctx context.Context, id bson.ObjectID) (*models.Souvenir, error)
	Create(ctx context.Context, souvenirs []*models.Souvenir) ([]*models.Souvenir, error)
	Cheap(ctx context.Context, maxPrice float64) ([]models.Souvenir, error)
	TopRated(ctx context.Context, n int) ([]models.Souvenir, error)
	ByTag(ctx context.Context, tag string) ([]models.SouvenirSummary, error)
	Count(ctx context.Context, f models.CountFilter) (int64, error)
	Search(ctx context.Context, substr string) ([]models.Souvenir, error)
	DiscussedSince(ctx context.Context, t time.Time) ([]models.Souvenir, error)
	PurgeOutOfStock(ctx context.Context) (*mongo.PurgeResult, error)
	AddReview(ctx context.Context, id bson.ObjectID, req *models.AddReviewRequest) (*models.Review, error)
	GetCountryStats(ctx context.Context) (*mongo.CountryStatsResult, error)
}

// Carts is the cart-side store surface the handlers consume.
type Carts interface {
	PutCart(ctx context.Context, login string, items []models.CartItem) (*models.Cart, error)
	CartSum(ctx context.Context, login string) (float64, error)
}

type Handler struct {
	catalog Catalog
	carts   Carts
}

func NewHandler(catalog Catalog, carts Carts) *Handler {
	return &Handler{catalog: catalog, carts: carts}
}

// respondStoreError maps store error kinds onto HTTP statuses. Everything
// unexpected is logged and surfaced as a 500 without detail.
func respondStoreError(c *gin.Context, field string, err error) {
	switch {
	case errors.Is(err, mongo.ErrNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Not found", []global.ValidationError{
			{Field: field, Message: "No document resolves to this value", Code: "not_found"},
		}))
	case errors.Is(err, models.ErrInvalid):
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Validation rejected", []global.ValidationError{
			{Field: field, Message: err.Error(), Code: "validation_error"},
		}))
	case errors.Is(err, mongo.ErrDuplicate):
		c.JSON(http.StatusConflict, global.ErrorResponse("Duplicate", []global.ValidationError{
			{Field: field, Message: err.Error(), Code: "duplicate"},
		}))
	case errors.Is(err, mongo.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Store unavailable", nil))
	default:
		log.Printf("store error: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Internal error", nil))
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.catalog.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

func (h *Handler) GetAllSouvenirs(c *gin.Context) {
	souvenirs, err := h.catalog.All(c.Request.Context())
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(souvenirs))
}

func (h *Handler) GetSouvenirByID(c *gin.Context) {
	souvenir, err := h.catalog.Get(c.Request.Context(), souvenirID(c))
	if err != nil {
		respondStoreError(c, "id", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(souvenir))
}

func (h *Handler) CreateSouvenirs(c *gin.Context) {
	var req []models.CreateSouvenirRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No souvenirs provided", []global.ValidationError{
			{Field: "souvenirs", Message: "At least one souvenir is required", Code: "empty_array"},
		}))
		return
	}

	souvenirs := make([]*models.Souvenir, len(req))
	for i, souvenirReq := range req {
		if err := souvenirReq.Validate(); err != nil {
			respondStoreError(c, "souvenirs", err)
			return
		}
		souvenirs[i] = souvenirReq.ToSouvenir()
	}

	created, err := h.catalog.Create(c.Request.Context(), souvenirs)
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"souvenirs": created,
		"count":     len(created),
	}))
}

func (h *Handler) GetCheapSouvenirs(c *gin.Context) {
	maxPrice, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid price", []global.ValidationError{
			{Field: "price", Message: "Must be a number", Code: "invalid_format"},
		}))
		return
	}

	souvenirs, err := h.catalog.Cheap(c.Request.Context(), maxPrice)
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(souvenirs))
}

func (h *Handler) GetTopRatedSouvenirs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid limit", []global.ValidationError{
			{Field: "limit", Message: "Must be an integer", Code: "invalid_format"},
		}))
		return
	}

	souvenirs, err := h.catalog.TopRated(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(souvenirs))
}

func (h *Handler) GetSouvenirsByTag(c *gin.Context) {
	summaries, err := h.catalog.ByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondStoreError(c, "tag", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(summaries))
}

func (h *Handler) GetSouvenirsCount(c *gin.Context) {
	var filter models.CountFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid filter", []global.ValidationError{
			{Field: "query", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}
	if err := filter.Validate(); err != nil {
		respondStoreError(c, "query", err)
		return
	}

	count, err := h.catalog.Count(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, "query", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]int64{"count": count}))
}

func (h *Handler) SearchSouvenirs(c *gin.Context) {
	souvenirs, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondStoreError(c, "q", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(souvenirs))
}

func (h *Handler) GetDiscussedSouvenirs(c *gin.Context) {
	since, err := time.Parse(time.RFC3339, c.Query("since"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid date", []global.ValidationError{
			{Field: "since", Message: "Must be an RFC3339 timestamp", Code: "invalid_format"},
		}))
		return
	}

	souvenirs, err := h.catalog.DiscussedSince(c.Request.Context(), since)
	if err != nil {
		respondStoreError(c, "since", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(souvenirs))
}

func (h *Handler) PurgeOutOfStock(c *gin.Context) {
	result, err := h.catalog.PurgeOutOfStock(c.Request.Context())
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func (h *Handler) AddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid review data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	review, err := h.catalog.AddReview(c.Request.Context(), souvenirID(c), &req)
	if err != nil {
		respondStoreError(c, "id", err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(review))
}

func (h *Handler) PutCart(c *gin.Context) {
	login := c.Param("login")

	var req models.PutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid cart data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}
	if err := req.Validate(); err != nil {
		respondStoreError(c, "items", err)
		return
	}

	cart, err := h.carts.PutCart(c.Request.Context(), login, req.Items)
	if err != nil {
		respondStoreError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) GetCartTotal(c *gin.Context) {
	login := c.Param("login")

	total, err := h.carts.CartSum(c.Request.Context(), login)
	if err != nil {
		respondStoreError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"login": login,
		"total": total,
	}))
}

func (h *Handler) GetCountryStats(c *gin.Context) {
	stats, err := h.catalog.GetCountryStats(c.Request.Context())
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(stats))
}

func (h *Handler) GetCatalogReport(c *gin.Context) {
	stats, err := h.catalog.GetCountryStats(c.Request.Context())
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	report, err := ai.GenerateCatalogReport(c.Request.Context(), stats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate catalog report", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func (h *Handler) GetReviewInsights(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 5
	}

	top, err := h.catalog.TopRated(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, "souvenirs", err)
		return
	}

	report, err := ai.GenerateReviewInsights(c.Request.Context(), top)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate review insights", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
