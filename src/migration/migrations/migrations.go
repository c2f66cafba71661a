package migrations

import (
	"git.tidepool.community/tidepool/tidepool/src/migration/types"
)

var All = make(map[types.MigrationVersion]types.Migration)

func registerMigration(m types.Migration) {
	All[m.Version()] = m
}
