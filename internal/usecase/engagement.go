package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"regexp"
	"strings"

	"catalitium/internal/repository"
)

const maxDescriptionWords = 5000

// SubscribeInput optionally carries the listing the signup originated from;
// its outbound link is echoed back so the client can continue the apply flow.
type SubscribeInput struct {
	Email string
	JobID int64
}

type SubscribeResult struct {
	Redirect string `json:"redirect,omitempty"`
}

type ContactInput struct {
	Email       string
	NameCompany string
	Message     string
}

type JobPostingInput struct {
	ContactEmail string
	Title        string
	Company      string
	Description  string
	SalaryRange  string
}

type EngagementUsecase interface {
	Subscribe(ctx context.Context, in SubscribeInput) (*SubscribeResult, error)
	SubmitContact(ctx context.Context, in ContactInput) error
	SubmitJobPosting(ctx context.Context, in JobPostingInput) error
}

type engagementUsecase struct {
	subscribers repository.SubscriberRepository
	contacts    repository.ContactRepository
	jobs        repository.JobRepository
	logger      *log.Logger
}

func NewEngagementUsecase(
	subscribers repository.SubscriberRepository,
	contacts repository.ContactRepository,
	jobs repository.JobRepository,
	logger *log.Logger,
) EngagementUsecase {
	return &engagementUsecase{
		subscribers: subscribers,
		contacts:    contacts,
		jobs:        jobs,
		logger:      logger,
	}
}

func (u *engagementUsecase) Subscribe(ctx context.Context, in SubscribeInput) (*SubscribeResult, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}

	redirect := ""
	if in.JobID > 0 {
		link, err := u.jobs.GetLink(ctx, in.JobID)
		if err != nil && !errors.Is(err, repository.ErrJobNotFound) {
			u.logger.Printf("[Engagement] link lookup failed job_id=%d err=%v", in.JobID, err)
		}
		redirect = link
	}

	if err := u.subscribers.Insert(ctx, email); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubscriber) {
			// Duplicates still get the redirect; signing up twice is not a
			// dead end for the apply flow.
			return &SubscribeResult{Redirect: redirect}, ErrDuplicate
		}
		u.logger.Printf("[Engagement] subscribe failed err=%v", err)
		return nil, ErrInternal
	}
	return &SubscribeResult{Redirect: redirect}, nil
}

func (u *engagementUsecase) SubmitContact(ctx context.Context, in ContactInput) error {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return fmt.Errorf("%w: email", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.NameCompany)
	if len(name) < 2 {
		return fmt.Errorf("%w: name", ErrInvalidInput)
	}
	message := strings.TrimSpace(in.Message)
	if len(message) < 5 {
		return fmt.Errorf("%w: message", ErrInvalidInput)
	}

	if err := u.contacts.InsertContact(ctx, repository.ContactMessage{
		Email:       email,
		NameCompany: name,
		Message:     message,
	}); err != nil {
		u.logger.Printf("[Engagement] contact insert failed err=%v", err)
		return ErrInternal
	}
	return nil
}

func (u *engagementUsecase) SubmitJobPosting(ctx context.Context, in JobPostingInput) error {
	email, err := normalizeEmail(in.ContactEmail)
	if err != nil {
		return fmt.Errorf("%w: contact_email", ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if len(title) < 2 {
		return fmt.Errorf("%w: job_title", ErrInvalidInput)
	}
	company := strings.TrimSpace(in.Company)
	if len(company) < 2 {
		return fmt.Errorf("%w: company", ErrInvalidInput)
	}
	description := strings.TrimSpace(in.Description)
	if len(description) < 10 {
		return fmt.Errorf("%w: description", ErrInvalidInput)
	}
	if wordCount(description) > maxDescriptionWords {
		return fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	if err := u.contacts.InsertJobPosting(ctx, repository.JobPosting{
		ContactEmail: email,
		Title:        title,
		Company:      company,
		Description:  description,
		SalaryRange:  strings.TrimSpace(in.SalaryRange),
	}); err != nil {
		u.logger.Printf("[Engagement] job posting insert failed err=%v", err)
		return ErrInternal
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty email")
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

func wordCount(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}
