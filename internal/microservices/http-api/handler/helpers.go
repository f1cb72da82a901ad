package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bookshelf/internal/microservices/http-api/validation"

	"github.com/gin-gonic/gin"
)

// requestTimeout bounds every storage round trip of a request
const requestTimeout = 5 * time.Second

// bindFieldBag decodes the JSON body into a generic map for the validators.
// Requests are then built from the same bag, so a value the validators accept
// can't fail a second decode. A missing or malformed body yields an empty bag,
// which then fails validation.
func bindFieldBag(c *gin.Context) map[string]any {
	var bag map[string]any
	if err := c.ShouldBindBodyWithJSON(&bag); err != nil || bag == nil {
		return map[string]any{}
	}
	return bag
}

// fieldString and fieldInt read values the validators have already accepted.
func fieldString(bag map[string]any, key string) string {
	s, _ := bag[key].(string)
	return s
}

func fieldInt(bag map[string]any, key string) int64 {
	n, _ := validation.WholeNumber(bag[key])
	return n
}

// queryFieldBag collects the named query parameters that were supplied.
func queryFieldBag(c *gin.Context, keys ...string) map[string]any {
	bag := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := c.GetQuery(k); ok {
			bag[k] = v
		}
	}
	return bag
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func validationFailed(c *gin.Context, errors []string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// internalError reports a storage failure with its underlying message.
func internalError(c *gin.Context, msg string, err error) {
	slog.ErrorContext(c.Request.Context(), msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": msg,
		"error":   err.Error(),
	})
}
