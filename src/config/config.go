package config

import (
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// Deployment-specific values are edited in place on the server. Everything
// here is a workable local dev setup against the docker-compose Postgres and
// MinIO containers.
var Config = TidepoolConfig{
	Env:      Dev,
	Addr:     "localhost:9010",
	BaseUrl:  "http://localhost:9010",
	LogLevel: zerolog.DebugLevel,

	Postgres: PostgresConfig{
		User:     "tidepool",
		Password: "password",
		Hostname: "localhost",
		Port:     5432,
		DbName:   "tidepool",
		LogLevel: tracelog.LogLevelWarn,
		MinConn:  2,
		MaxConn:  8,
	},

	Auth: AuthConfig{
		CookieDomain: "localhost",
		CookieSecure: false,
	},

	Spaces: SpacesConfig{
		Key:      "minioadmin",
		Secret:   "minioadmin",
		Region:   "us-east-1",
		Endpoint: "http://localhost:9000",
		Bucket:   "tidepool-assets",
		BaseUrl:  "http://localhost:9000/tidepool-assets",
	},

	Admin: AdminConfig{
		ContactEmail: "team@tidepool.community",
	},
}
