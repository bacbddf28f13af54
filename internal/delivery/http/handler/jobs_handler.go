package handler

import (
	"strconv"
	"time"

	"catalitium/internal/delivery/http/dto"
	"catalitium/internal/delivery/http/middleware"
	"catalitium/internal/pkg/response"
	"catalitium/internal/suggest"
	"catalitium/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const sessionCookie = "cat_sid"

type JobsHandler struct {
	search  usecase.JobSearchUsecase
	detail  usecase.JobDetailUsecase
	insight usecase.InsightUsecase
	trends  usecase.TrendsUsecase
	suggest *suggest.Index
}

func NewJobsHandler(
	search usecase.JobSearchUsecase,
	detail usecase.JobDetailUsecase,
	insight usecase.InsightUsecase,
	trends usecase.TrendsUsecase,
	suggestIndex *suggest.Index,
) *JobsHandler {
	return &JobsHandler{
		search:  search,
		detail:  detail,
		insight: insight,
		trends:  trends,
		suggest: suggestIndex,
	}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/jobs", h.HandleSearch)
	r.Get("/jobs/summary", h.HandleSummary)
	r.Get("/jobs/:id", h.HandleDetail)
	r.Get("/trends", h.HandleTrends)
	r.Get("/autocomplete", h.HandleAutocomplete)
}

func (h *JobsHandler) HandleSearch(c fiber.Ctx) error {
	in := usecase.SearchInput{
		RawTitle:   c.Query("title"),
		RawCountry: c.Query("country"),
		Page:       parseQueryInt(c, "page", 1),
		PerPage:    parseQueryInt(c, "per_page", 0),
		SessionID:  sessionID(c),
	}

	res, err := h.search.Search(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.JobItemResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, toJobItemResponse(it))
	}

	return response.Success(c, fiber.StatusOK, "success", dto.JobSearchResponse{
		Items: items,
		Meta: dto.PageMetaResponse{
			Page:    res.Meta.Page,
			PerPage: res.Meta.PerPage,
			Pages:   res.Meta.Pages,
			Total:   res.Meta.Total,
			HasPrev: res.Meta.HasPrev,
			HasNext: res.Meta.HasNext,
		},
		Query: dto.QueryEchoResponse{
			Title:          res.Query.Title,
			Country:        res.Query.CountryCode,
			DisplayCountry: res.Query.DisplayCountry,
		},
		IsDemo: res.IsDemo,
	})
}

func (h *JobsHandler) HandleSummary(c fiber.Ctx) error {
	ins, err := h.insight.SalaryInsight(c.Context(), c.Query("title"), c.Query("country"))
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.SalaryInsightResponse{
		Count: ins.Count,
		Salary: dto.SalaryDetail{
			Median:   ins.Median,
			Currency: ins.Currency,
		},
		RemoteShare: ins.RemoteShare,
	})
}

func (h *JobsHandler) HandleDetail(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	}

	detail, err := h.detail.GetDetail(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	related := make([]dto.RelatedJobResponse, 0, len(detail.Related))
	for _, r := range detail.Related {
		related = append(related, dto.RelatedJobResponse{
			ID:       r.ID,
			Title:    r.Title,
			Company:  r.Company,
			Location: r.Location,
			PostedAt: formatPostedAt(r.PostedAt),
		})
	}

	return response.Success(c, fiber.StatusOK, "success", dto.JobDetailResponse{
		Job:     toJobItemResponse(detail.Job),
		Related: related,
	})
}

func (h *JobsHandler) HandleTrends(c fiber.Ctx) error {
	buckets, err := h.trends.WeeklyTrends(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	weeks := make([]dto.TrendWeekResponse, 0, len(buckets))
	for _, b := range buckets {
		weeks = append(weeks, dto.TrendWeekResponse{
			Week:   b.WeekStart.Format("Jan 02"),
			Total:  b.Total,
			AI:     b.AI,
			Dev:    b.Dev,
			Senior: b.Senior,
			Remote: b.Remote,
		})
	}

	return response.Success(c, fiber.StatusOK, "success", dto.TrendsResponse{Weeks: weeks})
}

func (h *JobsHandler) HandleAutocomplete(c fiber.Ctx) error {
	suggestions := h.suggest.Suggest(c.Query("q"))
	if suggestions == nil {
		suggestions = []string{}
	}
	return response.Success(c, fiber.StatusOK, "success", dto.AutocompleteResponse{Suggestions: suggestions})
}

func toJobItemResponse(it usecase.JobItem) dto.JobItemResponse {
	return dto.JobItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Company:     it.Company,
		Location:    it.Location,
		Description: it.Description,
		Link:        it.Link,
		PostedAt:    formatPostedAt(it.PostedAt),
		IsNew:       it.IsNew,
		IsGhost:     it.IsGhost,
		IsDemo:      it.IsDemo,
	}
}

func formatPostedAt(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseQueryInt is deliberately lenient: free-text input never rejects a
// request, and downstream clamping absorbs out-of-range values.
func parseQueryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func sessionID(c fiber.Ctx) string {
	if sid := c.Cookies(sessionCookie); sid != "" {
		return sid
	}
	return uuid.NewString()
}
