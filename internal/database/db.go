// Package database opens and configures the MySQL connection pool used by
// every repository in the registration service.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open builds the DSN, opens the pool and pings it once so a bad host or
// credential fails at startup instead of on the first registration.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cred := user
	if pass != "" {
		cred = user + ":" + pass
	}
	// parseTime maps DATETIME columns to time.Time; all timestamps are UTC,
	// early-bird window checks depend on that.
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cred, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
