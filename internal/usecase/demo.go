package usecase

import "time"

// demoListings is the fixed placeholder set shown when an unfiltered search
// finds nothing. Negative ids keep demo rows out of the real id space so
// apply-tracking and detail lookups can never confuse them with stored
// listings.
func demoListings() []JobItem {
	posted := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return []JobItem{
		{
			ID:          -1,
			Title:       "Senior Software Engineer (AI)",
			Company:     "Catalitium",
			Location:    "Remote / EU",
			Description: "Own end-to-end features across ingestion, ranking, and AI-assisted matching.",
			PostedAt:    posted(2025, time.October, 1),
			IsDemo:      true,
		},
		{
			ID:          -2,
			Title:       "Data Engineer",
			Company:     "Catalitium",
			Location:    "London, UK",
			Description: "Build reliable pipelines and optimize warehouse performance.",
			PostedAt:    posted(2025, time.September, 28),
			IsDemo:      true,
		},
		{
			ID:          -3,
			Title:       "Product Manager",
			Company:     "Stealth",
			Location:    "Zurich, CH",
			Description: "Partner with design and engineering to deliver user value quickly.",
			PostedAt:    posted(2025, time.September, 27),
			IsDemo:      true,
		},
		{
			ID:          -4,
			Title:       "Frontend Developer",
			Company:     "Acme Corp",
			Location:    "Barcelona, ES",
			Description: "Ship delightful UI with Tailwind and strong accessibility.",
			PostedAt:    posted(2025, time.September, 26),
			IsDemo:      true,
		},
		{
			ID:          -5,
			Title:       "Cloud DevOps Engineer",
			Company:     "Nimbus",
			Location:    "Remote / Europe",
			Description: "Automate infrastructure, observability, and release workflows.",
			PostedAt:    posted(2025, time.September, 25),
			IsDemo:      true,
		},
		{
			ID:          -6,
			Title:       "ML Engineer",
			Company:     "Quantix",
			Location:    "Remote",
			Description: "Deploy ranking and semantic matching at scale.",
			PostedAt:    posted(2025, time.September, 24),
			IsDemo:      true,
		},
	}
}
