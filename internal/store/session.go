package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var sessionColumns = []string{
	"id", "sequence", "intern_id", "date", "time_in", "time_out", "task", "resources",
	"duration_minutes", "score", "status", "quiz_result", "feedback", "created_at",
}

// sessionRepo implements SessionRepo. History is ordered by the global
// sequence, which only grows, so append order is the read order.
type sessionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *sessionRepo) Append(ctx context.Context, session *Session) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	session.ID = uuid.New().String()
	session.Sequence = seqNum
	session.CreatedAt = time.Now().UTC()
	if session.Date.IsZero() {
		session.Date = session.CreatedAt
	}

	resources := session.Resources
	if resources == nil {
		resources = []string{}
	}
	res, err := encodeJSON(resources)
	if err != nil {
		return fmt.Errorf("marshal resources: %w", err)
	}

	query, args := builder().Insert("sessions").
		Columns(sessionColumns...).
		Values(
			session.ID, session.Sequence, session.InternID,
			session.Date.Format(dateLayout), nullTime(session.TimeIn), nullTime(session.TimeOut),
			session.Task, res, session.DurationMinutes, session.Score, session.Status,
			nullJSON(session.QuizResult), session.Feedback, formatTime(session.CreatedAt),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ListForIntern(ctx context.Context, internID string) ([]Session, error) {
	b := builder()
	query, args := b.Select(sessionColumns...).
		From(b.Table("sessions")).
		Where(entsql.EQ("intern_id", internID)).
		OrderBy(entsql.Asc("sequence")).
		Query()
	return r.list(ctx, query, args)
}

func (r *sessionRepo) ListAll(ctx context.Context) ([]Session, error) {
	b := builder()
	query, args := b.Select(sessionColumns...).
		From(b.Table("sessions")).
		OrderBy(entsql.Asc("sequence")).
		Query()
	return r.list(ctx, query, args)
}

func (r *sessionRepo) list(ctx context.Context, query string, args []any) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func scanSession(s rowScanner) (*Session, error) {
	var (
		ss              Session
		date, createdAt string
		timeIn, timeOut sql.NullString
		resources       string
		score           sql.NullInt64
		quizResult      sql.NullString
	)
	err := s.Scan(&ss.ID, &ss.Sequence, &ss.InternID, &date, &timeIn, &timeOut, &ss.Task,
		&resources, &ss.DurationMinutes, &score, &ss.Status, &quizResult, &ss.Feedback, &createdAt)
	if err != nil {
		return nil, err
	}

	if ss.Date, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	if ss.TimeIn, err = parseNullTime(timeIn); err != nil {
		return nil, err
	}
	if ss.TimeOut, err = parseNullTime(timeOut); err != nil {
		return nil, err
	}
	if ss.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(resources), &ss.Resources); err != nil {
		return nil, fmt.Errorf("unmarshal resources: %w", err)
	}
	if score.Valid {
		v := int(score.Int64)
		ss.Score = &v
	}
	ss.QuizResult = rawJSON(quizResult)
	return &ss, nil
}
