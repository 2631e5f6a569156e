package database

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/iliyamo/event-ticketing/internal/auth"
)

// Schema statements are idempotent so Migrate can run on every startup. They
// execute before the HTTP listener starts accepting traffic.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		role ENUM('user','admin') NOT NULL DEFAULT 'user',
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		date VARCHAR(32) NOT NULL,
		time VARCHAR(32) NOT NULL,
		location VARCHAR(255) NOT NULL,
		image VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		userid BIGINT UNSIGNED NOT NULL,
		eventid BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		eventname VARCHAR(255) NOT NULL,
		eventdate VARCHAR(32) NOT NULL,
		eventtime VARCHAR(32) NOT NULL,
		ticketprice DECIMAL(10,2) NOT NULL DEFAULT 0,
		qr TEXT,
		count INT NOT NULL DEFAULT 1,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the backing tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// EnsureAdmin creates a single admin account when none exists. The password
// comes from configuration; when unset a random one is generated and logged
// exactly once so an operator can capture it. A fixed well-known password is
// never used.
func EnsureAdmin(ctx context.Context, db *sql.DB, email, password string, bcryptCost int) error {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role='admin'").Scan(&n)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	generated := false
	if password == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		password = hex.EncodeToString(buf)
		generated = true
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (name, email, password, role) VALUES (?,?,?,'admin')",
		"Admin", email, hash)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}

	if generated {
		log.Printf("bootstrap: created admin %s with one-time password %s", email, password)
	} else {
		log.Printf("bootstrap: created admin %s", email)
	}
	return nil
}
