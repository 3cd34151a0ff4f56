package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// metricRepo implements MetricRepo.
type metricRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *metricRepo) AppendMetrics(ctx context.Context, internID string, date time.Time, values MetricValues) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	day := date.Format(dateLayout)
	query, args := builder().Insert("metric_points").
		Columns("sequence", "intern_id", "date", "metric_type", "value").
		Values(seqNum, internID, day, MetricOverallScore, values.OverallScore).
		Values(seqNum, internID, day, MetricConsistency, values.Consistency).
		Values(seqNum, internID, day, MetricImprovementRate, values.ImprovementRate).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append metrics for %q: %w", internID, err)
	}
	return nil
}

func (r *metricRepo) History(ctx context.Context, internID string, since time.Time) ([]MetricPoint, error) {
	where := entsql.EQ("intern_id", internID)
	if !since.IsZero() {
		where = entsql.And(where, entsql.GTE("date", since.Format(dateLayout)))
	}

	b := builder()
	query, args := b.Select("intern_id", "date", "metric_type", "value").
		From(b.Table("metric_points")).
		Where(where).
		OrderBy(entsql.Asc("sequence"), entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query metric history: %w", err)
	}
	defer rows.Close()

	var points []MetricPoint
	for rows.Next() {
		var (
			p    MetricPoint
			date string
		)
		if err := rows.Scan(&p.InternID, &date, &p.MetricType, &p.Value); err != nil {
			return nil, fmt.Errorf("scan metric point: %w", err)
		}
		if p.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
