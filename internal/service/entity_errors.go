package service

import (
	"errors"
	"strings"

	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

// BulkDeleteRequest lists the records to remove in one step.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// BulkDeleteResult reports how many records were removed.
type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
}

// translateRepoError maps repository sentinels onto API errors. Typed errors
// raised inside patch functions pass through unchanged.
func translateRepoError(err error, entity, conflictMessage string) error {
	var appErr *appErrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, repository.ErrDuplicateKey), errors.Is(err, repository.ErrDuplicateID):
		return appErrors.Clone(appErrors.ErrConflict, conflictMessage)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist "+entity)
	}
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// setString assigns a trimmed non-empty value.
func setString(dst *string, src *string) {
	if src == nil {
		return
	}
	if v := strings.TrimSpace(*src); v != "" {
		*dst = v
	}
}
