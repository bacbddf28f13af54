package handler

import (
	"context"
	"log"
	"strings"
	"time"

	"catalitium/internal/delivery/http/dto"
	"catalitium/internal/delivery/http/middleware"
	"catalitium/internal/pkg/response"
	"catalitium/internal/repository"
	"catalitium/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// SearchInvalidator drops derived cache entries after new listings land.
type SearchInvalidator interface {
	InvalidateSearch(ctx context.Context) error
}

type IngestHandler struct {
	uc          usecase.IngestUsecase
	invalidator SearchInvalidator
	logger      *log.Logger
}

func NewIngestHandler(uc usecase.IngestUsecase, invalidator SearchInvalidator, logger *log.Logger) *IngestHandler {
	return &IngestHandler{uc: uc, invalidator: invalidator, logger: logger}
}

func (h *IngestHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/jobs/ingest", h.HandleIngest)
}

func (h *IngestHandler) HandleIngest(c fiber.Ctx) error {
	var req dto.IngestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	rows := make([]repository.JobInsert, 0, len(req.Items))
	for _, it := range req.Items {
		rows = append(rows, repository.JobInsert{
			Title:       it.Title,
			Company:     it.Company,
			Location:    it.Location,
			City:        it.City,
			Region:      it.Region,
			Country:     it.Country,
			Description: it.Description,
			Link:        it.Link,
			SalaryMin:   it.SalaryMin,
			SalaryMax:   it.SalaryMax,
			Currency:    it.Currency,
			PostedAt:    parsePostedAt(it.PostedAt),
		})
	}

	res, err := h.uc.IngestListings(c.Context(), rows)
	if err != nil {
		return mapUsecaseError(err)
	}

	if res.Inserted > 0 && h.invalidator != nil {
		if err := h.invalidator.InvalidateSearch(c.Context()); err != nil {
			h.logger.Printf("[Ingest] cache invalidation failed err=%v", err)
		}
	}

	return response.Success(c, fiber.StatusOK, "success", dto.IngestResponse{
		Received: res.Received,
		Accepted: res.Accepted,
		Inserted: res.Inserted,
	})
}

var postedAtFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"20060102",
}

func parsePostedAt(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range postedAtFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
