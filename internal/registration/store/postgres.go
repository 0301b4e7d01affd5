package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"flock/internal/registration/models"
	"flock/pkg/platform/sentinel"
)

// Postgres persists registrations for one domain in a shared table keyed by
// domain. All three domain instances share the pool.
type Postgres struct {
	pool   *pgxpool.Pool
	domain string
}

// NewPostgres constructs a postgres-backed registration store for a domain.
func NewPostgres(pool *pgxpool.Pool, domain string) *Postgres {
	return &Postgres{pool: pool, domain: domain}
}

// EnsureSchema creates the subjects and registrations tables if missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS subjects (
			domain     TEXT NOT NULL,
			id         TEXT NOT NULL,
			title      TEXT NOT NULL,
			PRIMARY KEY (domain, id)
		)`)
	if err != nil {
		return fmt.Errorf("ensure subjects table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			id         UUID PRIMARY KEY,
			domain     TEXT NOT NULL,
			subject_id TEXT NOT NULL,
			email      TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			phone      TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT 'pending',
			user_id    UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			FOREIGN KEY (domain, subject_id) REFERENCES subjects (domain, id),
			UNIQUE (domain, subject_id, email)
		)`)
	if err != nil {
		return fmt.Errorf("ensure registrations table: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS idx_registrations_domain_status ON registrations (domain, status)`)
	if err != nil {
		return fmt.Errorf("ensure registrations index: %w", err)
	}
	return nil
}

// AddSubject upserts a subject row for this domain.
func (s *Postgres) AddSubject(ctx context.Context, id, title string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subjects (domain, id, title) VALUES ($1, $2, $3)
		ON CONFLICT (domain, id) DO UPDATE SET title = EXCLUDED.title`,
		s.domain, id, title)
	if err != nil {
		return fmt.Errorf("add subject: %w", err)
	}
	return nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Create assigns an ID and inserts the registration. The unique constraint on
// (domain, subject_id, email) makes duplicate rejection atomic under
// concurrent creates.
func (s *Postgres) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	stored := *reg
	stored.ID = uuid.New()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO registrations (id, domain, subject_id, email, name, phone, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		stored.ID, s.domain, stored.SubjectID, stored.Contact.Email, stored.Contact.Name,
		stored.Contact.Phone, stored.Status, stored.UserID, stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, sentinel.ErrAlreadyRegistered
			case pgForeignKeyViolation:
				return nil, fmt.Errorf("subject %s: %w", stored.SubjectID, sentinel.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return &stored, nil
}

// FindByID returns the registration or sentinel.ErrNotFound.
func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, subject_id, email, name, phone, status, user_id, created_at
		FROM registrations WHERE domain = $1 AND id = $2`,
		s.domain, id)
	return scanRegistration(row)
}

// ListAll returns every registration for the domain in stable order.
func (s *Postgres) ListAll(ctx context.Context) ([]*models.Registration, error) {
	return s.Search(ctx, models.Criteria{})
}

// UpdateStatus is a raw status write, returning the updated row.
func (s *Postgres) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Registration, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE registrations SET status = $3
		WHERE domain = $1 AND id = $2
		RETURNING id, subject_id, email, name, phone, status, user_id, created_at`,
		s.domain, id, status)
	return scanRegistration(row)
}

// Delete removes the registration outright.
func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM registrations WHERE domain = $1 AND id = $2`, s.domain, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Search returns the subset matching all populated criteria fields, joining
// subjects for the title filter. Empty criteria return the full collection.
func (s *Postgres) Search(ctx context.Context, criteria models.Criteria) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.subject_id, r.email, r.name, r.phone, r.status, r.user_id, r.created_at
		FROM registrations r
		JOIN subjects s ON s.domain = r.domain AND s.id = r.subject_id
		WHERE r.domain = $1`
	args := []any{s.domain}

	if criteria.Email != "" {
		args = append(args, "%"+criteria.Email+"%")
		query += fmt.Sprintf(" AND r.email ILIKE $%d", len(args))
	}
	if criteria.SubjectTitle != "" {
		args = append(args, "%"+criteria.SubjectTitle+"%")
		query += fmt.Sprintf(" AND s.title ILIKE $%d", len(args))
	}
	if criteria.Status != nil {
		args = append(args, *criteria.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += " ORDER BY r.created_at, r.id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search registrations: %w", err)
	}
	return regs, nil
}

func scanRegistration(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.SubjectID, &reg.Contact.Email, &reg.Contact.Name,
		&reg.Contact.Phone, &reg.Status, &reg.UserID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	return &reg, nil
}
