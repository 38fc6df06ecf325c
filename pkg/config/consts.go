package config

const (
	// EnvPrefix is intentionally empty: every variable names its full
	// KAPE_* key in its envconfig tag.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "KAPE_DB_DSN"
	EnvDBHost = "KAPE_DB_HOST"
	EnvDBUser = "KAPE_DB_USER"
	EnvDBName = "KAPE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
