package database

import (
	"context"
	"database/sql"
	"fmt"
)

// statements holds the full database schema, one statement per entry because
// the MySQL driver does not execute multi-statement strings by default.
//
// items.owner_id, claims.item_id and claims.claimant_id are soft references:
// no FOREIGN KEY constraints are declared, so deleting an item leaves its
// claims in place with a dangling item_id. Read paths treat the missing
// referenced row as a first-class absent case.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name     VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'student',
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS items (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255)  NOT NULL,
		description TEXT          NULL,
		category    VARCHAR(64)   NOT NULL,
		location    VARCHAR(255)  NOT NULL,
		status      VARCHAR(16)   NOT NULL DEFAULT 'lost',
		image_url   VARCHAR(1024) NULL,
		owner_id    BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_items_owner (owner_id),
		KEY idx_items_status (status),
		KEY idx_items_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS claims (
		id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		item_id           BIGINT UNSIGNED NOT NULL,
		claimant_id       BIGINT UNSIGNED NOT NULL,
		status            VARCHAR(16) NOT NULL DEFAULT 'pending',
		proof_description TEXT        NULL,
		created_at        DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_claims_item (item_id),
		KEY idx_claims_claimant (claimant_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables if they don't already exist.  It is safe
// to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
