package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/souvenirshop/go-api/pkg/global"
)

// SouvenirIDMiddleware parses the :id path parameter into an ObjectID and
// stores it in the request context for the handlers below it.
func SouvenirIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		objectID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid souvenir ID format", []global.ValidationError{
				{Field: "id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		c.Set("souvenirID", objectID)
		c.Next()
	}
}

func souvenirID(c *gin.Context) bson.ObjectID {
	return c.MustGet("souvenirID").(bson.ObjectID)
}
