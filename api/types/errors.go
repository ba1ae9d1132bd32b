package types

import (
	"errors"
	"log"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/marathons"
	apperrors "github.com/killallgit/marathon-api/pkg/errors"
)

// ToAppError translates engine errors into structured API errors
func ToAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var notFound marathons.NotFoundError
	var dupName marathons.DuplicateNameError

	switch {
	case errors.As(err, &notFound):
		return apperrors.NotFound("marathon", notFound.ID)
	case errors.Is(err, marathons.ErrNotFound):
		return apperrors.New(apperrors.ErrCodeNotFound, "marathon not found")
	case errors.As(err, &dupName):
		return apperrors.DuplicateName("marathon", dupName.Name)
	case errors.Is(err, marathons.ErrDuplicateName):
		return apperrors.New(apperrors.ErrCodeDuplicateName, err.Error())
	case errors.Is(err, marathons.ErrEmptyDraft):
		return apperrors.New(apperrors.ErrCodeEmptyDraft, err.Error())
	case errors.Is(err, marathons.ErrEmptyName):
		return apperrors.ValidationError("name", "must not be blank")
	case errors.Is(err, marathons.ErrDuplicateMovie):
		return apperrors.ValidationError("movies", err.Error())
	case errors.Is(err, models.ErrInvalidSortKey):
		return apperrors.ValidationError("sort", err.Error())
	case errors.Is(err, models.ErrInvalidSortOrder):
		return apperrors.ValidationError("order", err.Error())
	case errors.Is(err, marathons.ErrStorageUnavailable):
		log.Printf("[ERROR] Storage unavailable: %v", err)
		return apperrors.StorageError("read", err)
	default:
		log.Printf("[ERROR] Unhandled error: %v", err)
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal server error")
	}
}
