// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/unclebandit/customer-segmentation/internal/config"
)

// DSN builds a lib/pq connection string from the DB_* settings.
func DSN(c config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

func Open(c config.DBConfig) (*sql.DB, error) {
	log.Println("DB_USER:", c.User)
	log.Println("DB_NAME:", c.Name)
	log.Println("DB_HOST:", c.Host)

	return OpenDSN(DSN(c))
}

func OpenDSN(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	log.Println("✅ Connected to database")
	return conn, nil
}
