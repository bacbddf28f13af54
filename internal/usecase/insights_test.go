package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalitium/internal/repository"
)

func salaryRow(id int64, title string, low, high float64, currency, location string) repository.JobRow {
	return repository.JobRow{
		ID:        id,
		Title:     title,
		Location:  location,
		SalaryMin: f64Ptr(low),
		SalaryMax: f64Ptr(high),
		Currency:  currency,
	}
}

func TestSalaryInsight_MedianOfMidpoints(t *testing.T) {
	repo := &mockJobRepository{rows: []repository.JobRow{
		salaryRow(1, "engineer", 40000, 60000, "EUR", "Berlin"),  // midpoint 50000
		salaryRow(2, "engineer", 60000, 80000, "EUR", "Berlin"),  // midpoint 70000
		salaryRow(3, "engineer", 80000, 120000, "EUR", "Berlin"), // midpoint 100000
	}}
	u := NewInsightUsecase(repo, nil, time.Minute, testLogger())

	ins, err := u.SalaryInsight(context.Background(), "engineer", "")
	if err != nil {
		t.Fatal(err)
	}
	if ins.Count != 3 {
		t.Fatalf("count = %d", ins.Count)
	}
	if ins.Median == nil || *ins.Median != 70000 {
		t.Fatalf("median = %v, want 70000", ins.Median)
	}
	if ins.Currency != "EUR" {
		t.Fatalf("currency = %q", ins.Currency)
	}
}

func TestSalaryInsight_EvenSampleCountAverages(t *testing.T) {
	repo := &mockJobRepository{rows: []repository.JobRow{
		salaryRow(1, "engineer", 40000, 60000, "USD", "NYC"),   // 50000
		salaryRow(2, "engineer", 60000, 80000, "USD", "NYC"),   // 70000
		salaryRow(3, "engineer", 80000, 100000, "USD", "NYC"),  // 90000
		salaryRow(4, "engineer", 100000, 120000, "USD", "NYC"), // 110000
	}}
	u := NewInsightUsecase(repo, nil, time.Minute, testLogger())

	ins, err := u.SalaryInsight(context.Background(), "engineer", "")
	if err != nil {
		t.Fatal(err)
	}
	if ins.Median == nil || *ins.Median != 80000 {
		t.Fatalf("even-count median = %v, want 80000", ins.Median)
	}
}

func TestSalaryInsight_TooFewSamplesYieldsNoMedian(t *testing.T) {
	repo := &mockJobRepository{rows: []repository.JobRow{
		salaryRow(1, "engineer", 40000, 60000, "EUR", "Berlin"),
		salaryRow(2, "engineer", 60000, 80000, "EUR", "Berlin"),
		{ID: 3, Title: "engineer", Location: "Berlin"}, // no salary data
	}}
	u := NewInsightUsecase(repo, nil, time.Minute, testLogger())

	ins, err := u.SalaryInsight(context.Background(), "engineer", "")
	if err != nil {
		t.Fatal(err)
	}
	if ins.Median != nil {
		t.Fatalf("two salary samples must yield nil median, got %v", *ins.Median)
	}
	if ins.Currency != "" {
		t.Fatalf("currency must be empty without a median, got %q", ins.Currency)
	}
	if ins.Count != 3 {
		t.Fatalf("count reflects all matches regardless of salary data: %d", ins.Count)
	}
}

func TestSalaryInsight_PluralityCurrencyTieBreaksLexicographically(t *testing.T) {
	repo := &mockJobRepository{rows: []repository.JobRow{
		salaryRow(1, "engineer", 40000, 60000, "USD", "NYC"),
		salaryRow(2, "engineer", 60000, 80000, "USD", "NYC"),
		salaryRow(3, "engineer", 40000, 60000, "EUR", "Berlin"),
		salaryRow(4, "engineer", 60000, 80000, "EUR", "Berlin"),
	}}
	u := NewInsightUsecase(repo, nil, time.Minute, testLogger())

	ins, err := u.SalaryInsight(context.Background(), "engineer", "")
	if err != nil {
		t.Fatal(err)
	}
	if ins.Currency != "EUR" {
		t.Fatalf("tie must break lexicographically, got %q", ins.Currency)
	}
}

func TestSalaryInsight_RemoteShare(t *testing.T) {
	repo := &mockJobRepository{rows: []repository.JobRow{
		{ID: 1, Title: "engineer", Location: "Remote"},
		{ID: 2, Title: "engineer", Location: "Remote / EU"},
		{ID: 3, Title: "engineer", Location: "Berlin"},
		{ID: 4, Title: "engineer", Location: "Paris"},
	}}
	u := NewInsightUsecase(repo, nil, time.Minute, testLogger())

	ins, err := u.SalaryInsight(context.Background(), "engineer", "")
	if err != nil {
		t.Fatal(err)
	}
	if ins.RemoteShare != 0.5 {
		t.Fatalf("remote share = %v, want 0.5", ins.RemoteShare)
	}
}

func TestSalaryInsight_StoreFailure(t *testing.T) {
	repo := &mockJobRepository{fail: true}
	u := NewInsightUsecase(repo, nil, time.Minute, testLogger())

	_, err := u.SalaryInsight(context.Background(), "engineer", "")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}
