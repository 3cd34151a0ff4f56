package tracker

import (
	"context"

	"github.com/interntrack/interntrack/internal/performance"
	"github.com/interntrack/interntrack/internal/store"
)

// CohortRow summarizes one intern for the admin listing.
type CohortRow struct {
	InternID     string  `json:"internId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	TrackID      string  `json:"trackId"`
	TrackTitle   string  `json:"trackTitle"`
	Onboarded    bool    `json:"onboarded"`
	Similarity   int     `json:"similarity"`
	Sessions     int     `json:"sessions"`
	OverallScore float64 `json:"overallScore"`
}

// Cohort builds a row per intern in registration order.
func (s *Service) Cohort(ctx context.Context) ([]CohortRow, error) {
	interns, err := s.interns.List(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.tracks.List(ctx)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(catalog))
	for _, t := range catalog {
		titles[t.ID] = t.Title
	}
	byIntern := make(map[string][]store.Session)
	for _, sess := range all {
		byIntern[sess.InternID] = append(byIntern[sess.InternID], sess)
	}

	rows := make([]CohortRow, 0, len(interns))
	for i := range interns {
		in := &interns[i]
		history := byIntern[in.ID]
		row := CohortRow{
			InternID:   in.ID,
			Name:       in.Name,
			Email:      in.Email,
			TrackID:    in.TrackID,
			TrackTitle: titles[in.TrackID],
			Onboarded:  in.Onboarded,
			Sessions:   len(history),
		}
		if a := decodeAnalysis(ctx, in); a != nil {
			row.Similarity = a.Similarity
		}
		row.OverallScore = performance.Analyze(SessionRecords(history), nil).OverallScore
		rows = append(rows, row)
	}
	return rows, nil
}
