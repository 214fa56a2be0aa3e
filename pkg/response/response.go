package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/models"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message"`
	Data       interface{}            `json:"data,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
}

// JSON sends a success response with optional pagination and extra metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{StatusCode: status, Message: http.StatusText(status), Data: data}
	if len(meta) > 0 && len(meta[0]) > 0 {
		envelope.Metadata = make(map[string]interface{}, len(meta[0])+1)
		for k, v := range meta[0] {
			envelope.Metadata[k] = v
		}
	}
	if pagination != nil {
		if envelope.Metadata == nil {
			envelope.Metadata = map[string]interface{}{}
		}
		envelope.Metadata["pagination"] = pagination
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Accepted responds with HTTP 202 Accepted, used for queued jobs.
func Accepted(c *gin.Context, data interface{}) {
	JSON(c, http.StatusAccepted, data, nil)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	noStore(c)
	c.JSON(appErr.Status, Envelope{StatusCode: appErr.Status, Message: appErr.Message, Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
