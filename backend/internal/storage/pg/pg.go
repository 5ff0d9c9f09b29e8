package pg

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/yamdb-dev/yamdb/shared/config"
	"github.com/yamdb-dev/yamdb/shared/logger"
	shared_pg "github.com/yamdb-dev/yamdb/shared/storage/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// every public method bounds its queries with this timeout
const queryTimeout = 5 * time.Second

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := shared_pg.Connect(ctx, cfg, shared_pg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db: db}, nil
}

// NewWithDB wraps an existing pool
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Migrate brings the schema up to date
func (s *Storage) Migrate(ctx context.Context) error {
	return shared_pg.Migrate(ctx, s.db, migrations, "migrations")
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return shared_pg.WithTx(ctx, s.db, fn)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// escapeLike makes s match literally inside a LIKE pattern
func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return string(r)
}
