package sql

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tracebase/datamarket/pkg/config"
)

// Store is the gorm-backed Storage Gateway. It only issues reads; every
// filter value travels as a bound parameter, never interpolated SQL.
type Store struct {
	config config.Config
	db     *gorm.DB
	logger *logrus.Logger
}

const slowQueryThreshold = 500 * time.Millisecond

// NewStore connects to the backend named by the store URL. Postgres is the
// production backend; sqlite (wazero build, no cgo) serves local runs and
// tests.
func NewStore(logger *logrus.Logger, cfg config.Config) (*Store, error) {
	uri, err := url.Parse(cfg.StoreURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse store URL %q: %w", cfg.StoreURL, err)
	}

	var dialector gorm.Dialector
	switch uri.Scheme {
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.StoreURL)
	case "sqlite":
		dialector = gormlite.Open(strings.TrimPrefix(cfg.StoreURL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported store URL scheme %q", uri.Scheme)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLoggerAdaptor(logger, LoggerAdaptorConfig{
			SlowThreshold:             slowQueryThreshold,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", cfg.StoreURL, err)
	}

	return &Store{config: cfg, db: db, logger: logger}, nil
}

// NewStoreWithDB wraps an already-open gorm handle. Used by tests that seed
// their own sqlite database.
func NewStoreWithDB(logger *logrus.Logger, cfg config.Config, db *gorm.DB) *Store {
	return &Store{config: cfg, db: db, logger: logger}
}

func (s *Store) dialectHasILIKE() bool {
	return s.db.Dialector.Name() == "postgres"
}
