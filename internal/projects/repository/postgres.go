package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/storage/migrations"
)

const projectColumns = `id, client_name, client_email, client_phone, project_address, client_notes,
       zones, plants, status, date_created, date_completed`

// PostgresGateway stores projects in PostgreSQL. Live updates come from feed.
type PostgresGateway struct {
	pool *pgxpool.Pool
	feed Feed
}

func NewPostgresGateway(pool *pgxpool.Pool, feed Feed) *PostgresGateway {
	if feed == nil {
		feed = NewLocalFeed()
	}
	return &PostgresGateway{pool: pool, feed: feed}
}

// Migrate applies the embedded schema.
func (g *PostgresGateway) Migrate() error {
	return migrations.Up(stdlib.OpenDBFromPool(g.pool), migrations.DialectPostgres)
}

func (g *PostgresGateway) Create(ctx context.Context, p domain.Project) (string, error) {
	zones, plants, err := encodeCollections(p)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO projects (id, client_name, client_email, client_phone, project_address, client_notes,
                      zones, plants, status, date_created, date_completed)
VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8::jsonb, $9, $10, $11);
`
	for i := 0; i < 5; i++ {
		id, err := domain.NewPublicID()
		if err != nil {
			return "", err
		}

		_, err = g.pool.Exec(ctx, q, id, p.ClientName, p.ClientEmail, p.ClientPhone, p.ProjectAddress,
			p.ClientNotes, string(zones), string(plants), string(p.Status), p.DateCreated, p.DateCompleted)
		if err == nil {
			notifyAll(ctx, g.feed)
			return id, nil
		}

		// unique violation on id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("failed to generate unique project id")
}

func (g *PostgresGateway) Update(ctx context.Context, id string, p domain.Project) error {
	zones, plants, err := encodeCollections(p)
	if err != nil {
		return err
	}

	const q = `
UPDATE projects
SET client_name = $2, client_email = $3, client_phone = $4, project_address = $5, client_notes = $6,
    zones = $7::jsonb, plants = $8::jsonb, status = $9, date_created = $10, date_completed = $11,
    updated_at = now()
WHERE id = $1;
`
	tag, err := g.pool.Exec(ctx, q, id, p.ClientName, p.ClientEmail, p.ClientPhone, p.ProjectAddress,
		p.ClientNotes, string(zones), string(plants), string(p.Status), p.DateCreated, p.DateCompleted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	notifyAll(ctx, g.feed)
	return nil
}

func (g *PostgresGateway) Get(ctx context.Context, id string) (domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`
	p, err := scanPostgresProject(g.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, err
}

func (g *PostgresGateway) List(ctx context.Context, status domain.Status) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + `
FROM projects
WHERE status = $1
ORDER BY date_created DESC NULLS LAST, id;`

	rows, err := g.pool.Query(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanPostgresProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *PostgresGateway) Subscribe(ctx context.Context, status domain.Status) (<-chan []domain.Project, error) {
	return watchList(ctx, g.feed, status, g.List)
}

func (g *PostgresGateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

func (g *PostgresGateway) Close() error {
	g.pool.Close()
	return nil
}

func scanPostgresProject(row pgx.Row) (domain.Project, error) {
	var (
		p             domain.Project
		status        string
		zones, plants []byte
	)
	err := row.Scan(&p.ID, &p.ClientName, &p.ClientEmail, &p.ClientPhone, &p.ProjectAddress, &p.ClientNotes,
		&zones, &plants, &status, &p.DateCreated, &p.DateCompleted)
	if err != nil {
		return domain.Project{}, err
	}
	p.Status = domain.Status(status)
	if err := decodeCollections(&p, zones, plants); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}
