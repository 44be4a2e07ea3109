package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for every table the service touches. Statements are
// idempotent so EnsureSchema can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(80)  NOT NULL,
		email         VARCHAR(120) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		user_type     ENUM('donor','requester') NOT NULL,
		phone         VARCHAR(15)  NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS donors (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id       BIGINT UNSIGNED NOT NULL,
		name          VARCHAR(100) NOT NULL,
		blood_group   VARCHAR(5)   NOT NULL,
		phone         VARCHAR(15)  NOT NULL,
		district      VARCHAR(100) NOT NULL,
		hospital      VARCHAR(150) NOT NULL,
		latitude      DOUBLE NULL,
		longitude     DOUBLE NULL,
		is_available  TINYINT(1) NOT NULL DEFAULT 1,
		registered_at DATETIME NOT NULL,
		expires_at    DATETIME NOT NULL,
		UNIQUE KEY uq_donors_user (user_id),
		KEY idx_donors_match (blood_group, district),
		CONSTRAINT fk_donors_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS requests (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id        BIGINT UNSIGNED NOT NULL,
		requester_name VARCHAR(100) NOT NULL,
		blood_group    VARCHAR(5)   NOT NULL,
		district       VARCHAR(100) NOT NULL,
		hospital       VARCHAR(150) NOT NULL,
		phone          VARCHAR(15)  NOT NULL,
		urgency        ENUM('normal','urgent','critical') NOT NULL DEFAULT 'normal',
		status         ENUM('pending','fulfilled','cancelled') NOT NULL DEFAULT 'pending',
		created_at     DATETIME NOT NULL,
		fulfilled_at   DATETIME NULL,
		KEY idx_requests_user (user_id, created_at),
		KEY idx_requests_status (status),
		CONSTRAINT fk_requests_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS hospitals (
		id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name      VARCHAR(150) NOT NULL,
		district  VARCHAR(100) NOT NULL,
		address   VARCHAR(255) NULL,
		contact   VARCHAR(20)  NULL,
		latitude  DOUBLE NULL,
		longitude DOUBLE NULL,
		KEY idx_hospitals_district (district)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. It does not migrate existing
// columns; structural changes still need hand-written migrations.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
