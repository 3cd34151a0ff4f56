package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/interntrack/interntrack/internal/skillgap"
)

var trackColumns = []string{"id", "title", "domain", "description", "required_skills"}

// trackRepo implements TrackRepo.
type trackRepo struct {
	db *sql.DB
}

func (r *trackRepo) Upsert(ctx context.Context, track skillgap.RoleRequirement) error {
	if track.ID == "" {
		return fmt.Errorf("upsert track: empty id")
	}
	skills, err := encodeJSON(track.RequiredSkills)
	if err != nil {
		return fmt.Errorf("marshal required skills: %w", err)
	}

	query, args := builder().Insert("tracks").
		Columns("id", "title", "domain", "description", "required_skills", "updated_at").
		Values(track.ID, track.Title, track.Domain, track.Description, skills, formatTime(time.Now())).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert track %q: %w", track.ID, err)
	}
	return nil
}

func (r *trackRepo) Get(ctx context.Context, id string) (*skillgap.RoleRequirement, error) {
	b := builder()
	query, args := b.Select(trackColumns...).
		From(b.Table("tracks")).
		Where(entsql.EQ("id", id)).
		Query()

	t, err := scanTrack(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get track %q: %w", id, err)
	}
	return t, nil
}

func (r *trackRepo) List(ctx context.Context) ([]skillgap.RoleRequirement, error) {
	b := builder()
	query, args := b.Select(trackColumns...).
		From(b.Table("tracks")).
		OrderBy("id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []skillgap.RoleRequirement
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

func (r *trackRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete("tracks").Where(entsql.EQ("id", id)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete track %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trackRepo) SeedIfEmpty(ctx context.Context, tracks []skillgap.RoleRequirement) (bool, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).From(b.Table("tracks")).Query()

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count tracks: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, t := range tracks {
		if err := r.Upsert(ctx, t); err != nil {
			return false, err
		}
	}
	return true, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(s rowScanner) (*skillgap.RoleRequirement, error) {
	var (
		t      skillgap.RoleRequirement
		skills string
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Domain, &t.Description, &skills); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(skills), &t.RequiredSkills); err != nil {
		return nil, fmt.Errorf("unmarshal required skills: %w", err)
	}
	return &t, nil
}
