package database

import (
	"context"
	"database/sql"
)

// migrations holds the schema statements executed on startup. Each is
// idempotent (IF NOT EXISTS) so running them on every boot is safe.
// user_books carries the unique(user_id, book_id) index that guarantees
// one shelf per user per book, and both foreign keys cascade so pivot
// rows disappear with their user or book.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         CHAR(36)     NOT NULL,
		email      VARCHAR(255) NOT NULL,
		hashed_pw  VARCHAR(255) NOT NULL,
		is_active  TINYINT(1)   NOT NULL DEFAULT 1,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,

	`CREATE TABLE IF NOT EXISTS books (
		id          VARCHAR(64)  NOT NULL,
		title       VARCHAR(512) NOT NULL,
		authors     VARCHAR(512) NOT NULL DEFAULT '',
		thumbnail   VARCHAR(512) NOT NULL DEFAULT '',
		description TEXT         NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_books (
		id      BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id CHAR(36)        NOT NULL,
		book_id VARCHAR(64)     NOT NULL,
		shelf   VARCHAR(32)     NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_user_book (user_id, book_id),
		CONSTRAINT fk_user_books_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_user_books_book FOREIGN KEY (book_id) REFERENCES books (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
