package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/middleware"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/response"
)

// bindJSON decodes the request body into dest, answering 400 on failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// pageQuery reads page and limit; malformed values fall back to defaults.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, size
}

func searchQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("search"))
}

func currentUserID(c *gin.Context) string {
	if claims, ok := middleware.CurrentClaims(c); ok {
		return claims.UserID
	}
	return ""
}
