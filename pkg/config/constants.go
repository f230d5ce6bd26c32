package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry the full
	// ECCLESIA_ variable names so the prefix stays informational.
	EnvPrefix = "ecclesia"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "ECCLESIA_DB_DSN"
	EnvDBHost = "ECCLESIA_DB_HOST"
	EnvDBUser = "ECCLESIA_DB_USER"
	EnvDBName = "ECCLESIA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
