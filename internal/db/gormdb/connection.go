package gormdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rajansharma08/lyftr-webhook-api/internal/db"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	conn *gorm.DB
}

// New opens a GORM connection for the given driver ("sqlite" or "postgres").
// For sqlite the dsn is a file path; parent directories are created so a
// fresh deployment can point at an empty data volume.
func New(driver, dsn string) (*GormDB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		// Concurrent webhook deliveries contend on the single writer lock;
		// a busy timeout makes them queue instead of erroring.
		if !strings.Contains(dsn, "?") {
			dsn += "?_busy_timeout=5000"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &GormDB{conn: conn}, nil
}

func (g *GormDB) Conn() any {
	return g.conn
}

// verify it satisfies db.DB
var _ db.DB = (*GormDB)(nil)
