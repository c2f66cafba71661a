package migrations

import (
	"context"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(CreateInitialTables{})
}

type CreateInitialTables struct{}

func (m CreateInitialTables) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC))
}

func (m CreateInitialTables) Name() string {
	return "CreateInitialTables"
}

func (m CreateInitialTables) Description() string {
	return "Creates the core Tidepool tables: users, sessions, assets, the six content types, and their comments"
}

func (m CreateInitialTables) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE asset (
			id UUID PRIMARY KEY,
			uploader_id INT,
			s3_key VARCHAR(2000) NOT NULL,
			filename VARCHAR(2000) NOT NULL,
			size INT NOT NULL,
			mime_type VARCHAR(255) NOT NULL,
			sha1sum VARCHAR(40) NOT NULL
		);

		CREATE TABLE tp_user (
			id SERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL,
			password VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			date_joined TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login TIMESTAMP WITH TIME ZONE,
			name VARCHAR(255) NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			avatar_asset_id UUID REFERENCES asset (id)
		);
		CREATE UNIQUE INDEX tp_user_username ON tp_user (LOWER(username));

		CREATE TABLE session (
			id VARCHAR(40) PRIMARY KEY,
			user_id INT NOT NULL REFERENCES tp_user (id) ON DELETE CASCADE,
			csrf_token VARCHAR(30) NOT NULL,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE TABLE thread (
			id VARCHAR(40) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			image_asset_id UUID REFERENCES asset (id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			locked BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE project (
			id VARCHAR(40) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			github_url VARCHAR(2000),
			demo_url VARCHAR(2000),
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			image_asset_id UUID REFERENCES asset (id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE
		);

		CREATE TABLE music_post (
			id VARCHAR(40) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			url VARCHAR(2000) NOT NULL,
			type VARCHAR(50) NOT NULL,
			tags VARCHAR(2000),
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			image_asset_id UUID REFERENCES asset (id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE
		);

		CREATE TABLE timeline_update (
			id VARCHAR(40) PRIMARY KEY,
			title VARCHAR(255),
			body TEXT NOT NULL,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			image_asset_id UUID REFERENCES asset (id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE
		);

		CREATE TABLE event (
			id VARCHAR(40) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			details TEXT NOT NULL,
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			image_asset_id UUID REFERENCES asset (id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE
		);

		CREATE TABLE dev_log (
			id VARCHAR(40) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			image_asset_id UUID REFERENCES asset (id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE
		);

		CREATE TABLE forum_reply (
			id VARCHAR(40) PRIMARY KEY,
			thread_id VARCHAR(40) NOT NULL REFERENCES thread (id) ON DELETE CASCADE,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE project_comment (
			id VARCHAR(40) PRIMARY KEY,
			project_id VARCHAR(40) NOT NULL REFERENCES project (id) ON DELETE CASCADE,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE music_comment (
			id VARCHAR(40) PRIMARY KEY,
			music_post_id VARCHAR(40) NOT NULL REFERENCES music_post (id) ON DELETE CASCADE,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE timeline_comment (
			id VARCHAR(40) PRIMARY KEY,
			timeline_update_id VARCHAR(40) NOT NULL REFERENCES timeline_update (id) ON DELETE CASCADE,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE event_comment (
			id VARCHAR(40) PRIMARY KEY,
			event_id VARCHAR(40) NOT NULL REFERENCES event (id) ON DELETE CASCADE,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE dev_log_comment (
			id VARCHAR(40) PRIMARY KEY,
			dev_log_id VARCHAR(40) NOT NULL REFERENCES dev_log (id) ON DELETE CASCADE,
			author_id INT REFERENCES tp_user (id) ON DELETE SET NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		);
	`)
	return err
}

func (m CreateInitialTables) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE dev_log_comment;
		DROP TABLE event_comment;
		DROP TABLE timeline_comment;
		DROP TABLE music_comment;
		DROP TABLE project_comment;
		DROP TABLE forum_reply;
		DROP TABLE dev_log;
		DROP TABLE event;
		DROP TABLE timeline_update;
		DROP TABLE music_post;
		DROP TABLE project;
		DROP TABLE thread;
		DROP TABLE session;
		DROP TABLE tp_user;
		DROP TABLE asset;
	`)
	return err
}
