package migrations

import (
	"context"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddMoveRecords{})
}

type AddMoveRecords struct{}

func (m AddMoveRecords) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 8, 18, 9, 30, 0, 0, time.UTC))
}

func (m AddMoveRecords) Name() string {
	return "AddMoveRecords"
}

func (m AddMoveRecords) Description() string {
	return "Adds the move ledger and the moved-to stamp columns on every content table"
}

func (m AddMoveRecords) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE move_record (
			id VARCHAR(40) PRIMARY KEY,
			source_type VARCHAR(20) NOT NULL,
			source_id VARCHAR(40) NOT NULL,
			dest_type VARCHAR(20) NOT NULL,
			dest_id VARCHAR(40) NOT NULL,
			moved_by_user_id INT NOT NULL REFERENCES tp_user (id),
			moved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,

			UNIQUE (source_type, source_id)
		);

		ALTER TABLE thread
			ADD moved_to_type VARCHAR(20),
			ADD moved_to_id VARCHAR(40),
			ADD moved_at TIMESTAMP WITH TIME ZONE,
			ADD moved_by_user_id INT;
		ALTER TABLE project
			ADD moved_to_type VARCHAR(20),
			ADD moved_to_id VARCHAR(40),
			ADD moved_at TIMESTAMP WITH TIME ZONE,
			ADD moved_by_user_id INT;
		ALTER TABLE music_post
			ADD moved_to_type VARCHAR(20),
			ADD moved_to_id VARCHAR(40),
			ADD moved_at TIMESTAMP WITH TIME ZONE,
			ADD moved_by_user_id INT;
		ALTER TABLE timeline_update
			ADD moved_to_type VARCHAR(20),
			ADD moved_to_id VARCHAR(40),
			ADD moved_at TIMESTAMP WITH TIME ZONE,
			ADD moved_by_user_id INT;
		ALTER TABLE event
			ADD moved_to_type VARCHAR(20),
			ADD moved_to_id VARCHAR(40),
			ADD moved_at TIMESTAMP WITH TIME ZONE,
			ADD moved_by_user_id INT;
		ALTER TABLE dev_log
			ADD moved_to_type VARCHAR(20),
			ADD moved_to_id VARCHAR(40),
			ADD moved_at TIMESTAMP WITH TIME ZONE,
			ADD moved_by_user_id INT;
	`)
	return err
}

func (m AddMoveRecords) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		ALTER TABLE dev_log
			DROP moved_to_type, DROP moved_to_id, DROP moved_at, DROP moved_by_user_id;
		ALTER TABLE event
			DROP moved_to_type, DROP moved_to_id, DROP moved_at, DROP moved_by_user_id;
		ALTER TABLE timeline_update
			DROP moved_to_type, DROP moved_to_id, DROP moved_at, DROP moved_by_user_id;
		ALTER TABLE music_post
			DROP moved_to_type, DROP moved_to_id, DROP moved_at, DROP moved_by_user_id;
		ALTER TABLE project
			DROP moved_to_type, DROP moved_to_id, DROP moved_at, DROP moved_by_user_id;
		ALTER TABLE thread
			DROP moved_to_type, DROP moved_to_id, DROP moved_at, DROP moved_by_user_id;

		DROP TABLE move_record;
	`)
	return err
}
