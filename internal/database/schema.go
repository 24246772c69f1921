package database

import (
	"context"
	"database/sql"
)

// Migrate creates every table the application needs. All statements are
// additive (CREATE TABLE IF NOT EXISTS) so the function is safe to run on
// every process start against an existing database.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Identity + OTP credential in one table. There is no customer
		// password; the row is upserted on every sign-in.
		`CREATE TABLE IF NOT EXISTS user_otps (
			user_id    BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_mail  VARCHAR(255) NOT NULL,
			otp        VARCHAR(6) NOT NULL,
			created_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL,
			PRIMARY KEY (user_id),
			UNIQUE KEY uq_user_otps_mail (user_mail)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS food_courts (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name          VARCHAR(100) NOT NULL,
			loc           VARCHAR(100) NOT NULL,
			coordinates   VARCHAR(100) NOT NULL,
			timings       VARCHAR(100) NULL,
			popular_items VARCHAR(255) NULL,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS food_items (
			id    BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name  VARCHAR(100) NOT NULL,
			price DECIMAL(8,2) NOT NULL,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		// Per-court stock level, the only mutable stock record.
		`CREATE TABLE IF NOT EXISTS food_item_quantities (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			food_item_id  BIGINT UNSIGNED NOT NULL,
			food_court_id BIGINT UNSIGNED NOT NULL,
			quantity      BIGINT NOT NULL,
			PRIMARY KEY (id),
			KEY idx_fiq_item_court (food_item_id, food_court_id),
			CONSTRAINT fk_fiq_item  FOREIGN KEY (food_item_id)  REFERENCES food_items (id),
			CONSTRAINT fk_fiq_court FOREIGN KEY (food_court_id) REFERENCES food_courts (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		// One row per cart line item; a multi-item checkout shares unique_code
		// across its rows but has no other transaction identifier.
		`CREATE TABLE IF NOT EXISTS orders (
			order_id      BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id       BIGINT UNSIGNED NOT NULL,
			food_id       BIGINT UNSIGNED NOT NULL,
			food_court_id BIGINT UNSIGNED NOT NULL,
			quantity      BIGINT NOT NULL,
			payment       ENUM('pending','completed') NOT NULL,
			status        ENUM('pending','accepted','completed','cancelled') NOT NULL,
			unique_code   VARCHAR(16) NOT NULL,
			date          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (order_id),
			KEY idx_orders_user (user_id),
			KEY idx_orders_court (food_court_id),
			CONSTRAINT fk_orders_user  FOREIGN KEY (user_id)       REFERENCES user_otps (user_id),
			CONSTRAINT fk_orders_item  FOREIGN KEY (food_id)       REFERENCES food_items (id),
			CONSTRAINT fk_orders_court FOREIGN KEY (food_court_id) REFERENCES food_courts (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS favorites (
			id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id       BIGINT UNSIGNED NOT NULL,
			food_item_id  BIGINT UNSIGNED NOT NULL,
			food_court_id BIGINT UNSIGNED NOT NULL,
			PRIMARY KEY (id),
			KEY idx_favorites_user (user_id),
			CONSTRAINT fk_fav_user  FOREIGN KEY (user_id)       REFERENCES user_otps (user_id),
			CONSTRAINT fk_fav_item  FOREIGN KEY (food_item_id)  REFERENCES food_items (id),
			CONSTRAINT fk_fav_court FOREIGN KEY (food_court_id) REFERENCES food_courts (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		// Per-court vendor credential. One bcrypt hash per court replaces the
		// single shared password the vendor dashboard used to ship with.
		`CREATE TABLE IF NOT EXISTS food_court_credentials (
			food_court_id BIGINT UNSIGNED NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (food_court_id),
			CONSTRAINT fk_cred_court FOREIGN KEY (food_court_id) REFERENCES food_courts (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
