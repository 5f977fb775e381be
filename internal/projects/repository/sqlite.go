package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/storage/migrations"
)

// Fixed-width UTC layout so stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteGateway stores projects in a local SQLite file. Live updates come from feed.
type SQLiteGateway struct {
	db   *sql.DB
	feed Feed
}

func NewSQLiteGateway(db *sql.DB, feed Feed) *SQLiteGateway {
	if feed == nil {
		feed = NewLocalFeed()
	}
	return &SQLiteGateway{db: db, feed: feed}
}

func (g *SQLiteGateway) Migrate() error {
	return migrations.Up(g.db, migrations.DialectSQLite)
}

func (g *SQLiteGateway) Create(ctx context.Context, p domain.Project) (string, error) {
	zones, plants, err := encodeCollections(p)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO projects (id, client_name, client_email, client_phone, project_address, client_notes,
                      zones, plants, status, date_created, date_completed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	for i := 0; i < 5; i++ {
		id, err := domain.NewPublicID()
		if err != nil {
			return "", err
		}

		_, err = g.db.ExecContext(ctx, q, id, p.ClientName, p.ClientEmail, p.ClientPhone, p.ProjectAddress,
			p.ClientNotes, string(zones), string(plants), string(p.Status),
			formatTime(p.DateCreated), formatTime(p.DateCompleted))
		if err == nil {
			notifyAll(ctx, g.feed)
			return id, nil
		}

		var sqlErr *sqlite.Error
		if errors.As(err, &sqlErr) && sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("failed to generate unique project id")
}

func (g *SQLiteGateway) Update(ctx context.Context, id string, p domain.Project) error {
	zones, plants, err := encodeCollections(p)
	if err != nil {
		return err
	}

	const q = `
UPDATE projects
SET client_name = ?, client_email = ?, client_phone = ?, project_address = ?, client_notes = ?,
    zones = ?, plants = ?, status = ?, date_created = ?, date_completed = ?,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
WHERE id = ?;
`
	res, err := g.db.ExecContext(ctx, q, p.ClientName, p.ClientEmail, p.ClientPhone, p.ProjectAddress,
		p.ClientNotes, string(zones), string(plants), string(p.Status),
		formatTime(p.DateCreated), formatTime(p.DateCompleted), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	notifyAll(ctx, g.feed)
	return nil
}

func (g *SQLiteGateway) Get(ctx context.Context, id string) (domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?;`
	p, err := scanSQLiteProject(g.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, err
}

func (g *SQLiteGateway) List(ctx context.Context, status domain.Status) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + `
FROM projects
WHERE status = ?
ORDER BY date_created IS NULL, date_created DESC, id;`

	rows, err := g.db.QueryContext(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanSQLiteProject(rows)
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

func (g *SQLiteGateway) Subscribe(ctx context.Context, status domain.Status) (<-chan []domain.Project, error) {
	return watchList(ctx, g.feed, status, g.List)
}

func (g *SQLiteGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteProject(row rowScanner) (domain.Project, error) {
	var (
		p                     domain.Project
		status, zones, plants string
		created, completed    sql.NullString
	)
	err := row.Scan(&p.ID, &p.ClientName, &p.ClientEmail, &p.ClientPhone, &p.ProjectAddress, &p.ClientNotes,
		&zones, &plants, &status, &created, &completed)
	if err != nil {
		return domain.Project{}, err
	}
	p.Status = domain.Status(status)
	if p.DateCreated, err = parseTime(created); err != nil {
		return domain.Project{}, err
	}
	if p.DateCompleted, err = parseTime(completed); err != nil {
		return domain.Project{}, err
	}
	if err := decodeCollections(&p, []byte(zones), []byte(plants)); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(sqliteTimeLayout), Valid: true}
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(sqliteTimeLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", s.String, err)
	}
	return &t, nil
}
