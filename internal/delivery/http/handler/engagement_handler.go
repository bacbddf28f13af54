package handler

import (
	"errors"
	"strings"

	"catalitium/internal/delivery/http/dto"
	"catalitium/internal/delivery/http/middleware"
	"catalitium/internal/pkg/response"
	"catalitium/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EngagementHandler struct {
	uc usecase.EngagementUsecase
}

func NewEngagementHandler(uc usecase.EngagementUsecase) *EngagementHandler {
	return &EngagementHandler{uc: uc}
}

func (h *EngagementHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/subscribe", h.HandleSubscribe)
	r.Post("/contact", h.HandleContact)
	r.Post("/job-posting", h.HandleJobPosting)
}

func (h *EngagementHandler) HandleSubscribe(c fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	res, err := h.uc.Subscribe(c.Context(), usecase.SubscribeInput{
		Email: req.Email,
		JobID: req.JobID,
	})
	if err != nil {
		// A duplicate signup is not a dead end; surface it with the redirect
		// so the client can continue the apply flow.
		if errors.Is(err, usecase.ErrDuplicate) && res != nil {
			return response.Success(c, fiber.StatusOK, "success", dto.SubscribeResponse{
				Status:   "duplicate",
				Redirect: res.Redirect,
			})
		}
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.SubscribeResponse{
		Status:   "ok",
		Redirect: res.Redirect,
	})
}

func (h *EngagementHandler) HandleContact(c fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	name := firstNonEmpty(req.Name, req.NameCompany, req.Company)
	if err := h.uc.SubmitContact(c.Context(), usecase.ContactInput{
		Email:       req.Email,
		NameCompany: name,
		Message:     req.Message,
	}); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", nil)
}

func (h *EngagementHandler) HandleJobPosting(c fiber.Ctx) error {
	var req dto.JobPostingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.SubmitJobPosting(c.Context(), usecase.JobPostingInput{
		ContactEmail: firstNonEmpty(req.ContactEmail, req.Email),
		Title:        req.JobTitle,
		Company:      req.Company,
		Description:  req.Description,
		SalaryRange:  req.SalaryRange,
	}); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", nil)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
