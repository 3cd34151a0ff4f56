package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var internColumns = []string{
	"id", "name", "email", "track_id", "skills", "onboarded",
	"analysis", "metrics", "created_at", "updated_at",
}

// internRepo implements InternRepo.
type internRepo struct {
	db *sql.DB
}

func (r *internRepo) Create(ctx context.Context, intern *Intern) error {
	if intern.ID == "" {
		intern.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if intern.CreatedAt.IsZero() {
		intern.CreatedAt = now
	}
	intern.UpdatedAt = now

	skills, err := encodeJSON(nonNilSkills(intern))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	query, args := builder().Insert("interns").
		Columns(internColumns...).
		Values(
			intern.ID, intern.Name, strings.ToLower(intern.Email), intern.TrackID, skills,
			boolToInt(intern.Onboarded), nullJSON(intern.Analysis), nullJSON(intern.Metrics),
			formatTime(intern.CreatedAt), formatTime(intern.UpdatedAt),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create intern: %w", err)
	}
	return nil
}

func (r *internRepo) Get(ctx context.Context, id string) (*Intern, error) {
	return r.getBy(ctx, "id", id)
}

func (r *internRepo) GetByEmail(ctx context.Context, email string) (*Intern, error) {
	return r.getBy(ctx, "email", strings.ToLower(email))
}

func (r *internRepo) getBy(ctx context.Context, column, value string) (*Intern, error) {
	b := builder()
	query, args := b.Select(internColumns...).
		From(b.Table("interns")).
		Where(entsql.EQ(column, value)).
		Query()

	in, err := scanIntern(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get intern by %s: %w", column, err)
	}
	return in, nil
}

func (r *internRepo) List(ctx context.Context) ([]Intern, error) {
	b := builder()
	query, args := b.Select(internColumns...).
		From(b.Table("interns")).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interns: %w", err)
	}
	defer rows.Close()

	var interns []Intern
	for rows.Next() {
		in, err := scanIntern(rows)
		if err != nil {
			return nil, fmt.Errorf("scan intern: %w", err)
		}
		interns = append(interns, *in)
	}
	return interns, rows.Err()
}

func (r *internRepo) Update(ctx context.Context, intern *Intern) error {
	skills, err := encodeJSON(nonNilSkills(intern))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	intern.UpdatedAt = time.Now().UTC()

	query, args := builder().Update("interns").
		Set("name", intern.Name).
		Set("track_id", intern.TrackID).
		Set("skills", skills).
		Set("onboarded", boolToInt(intern.Onboarded)).
		Set("analysis", nullJSON(intern.Analysis)).
		Set("metrics", nullJSON(intern.Metrics)).
		Set("updated_at", formatTime(intern.UpdatedAt)).
		Where(entsql.EQ("id", intern.ID)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update intern %q: %w", intern.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nonNilSkills(intern *Intern) any {
	if intern.Skills == nil {
		return []any{}
	}
	return intern.Skills
}

func scanIntern(s rowScanner) (*Intern, error) {
	var (
		in                   Intern
		skills               string
		onboarded            int
		analysis, metrics    sql.NullString
		createdAt, updatedAt string
	)
	err := s.Scan(&in.ID, &in.Name, &in.Email, &in.TrackID, &skills, &onboarded,
		&analysis, &metrics, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(skills), &in.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	in.Onboarded = onboarded != 0
	in.Analysis = rawJSON(analysis)
	in.Metrics = rawJSON(metrics)

	if in.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if in.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &in, nil
}
