package config

// EnvPrefix is passed to envconfig; individual fields carry explicit keys so
// this stays empty by convention.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "ICEWHEELS_APP_ENV"
	EnvAppPort = "ICEWHEELS_APP_PORT"
	EnvDBDSN   = "ICEWHEELS_DB_DSN"
	EnvDBHost  = "ICEWHEELS_DB_HOST"
	EnvDBUser  = "ICEWHEELS_DB_USER"
	EnvDBName  = "ICEWHEELS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
