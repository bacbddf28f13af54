package handler

import (
	"errors"

	"catalitium/internal/delivery/http/middleware"
	"catalitium/internal/pkg/response"
	"catalitium/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidPagination):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, response.MessageConflict, nil, err)
	case errors.Is(err, usecase.ErrStoreUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
