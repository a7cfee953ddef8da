package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "BATOOL_APP_ENV"
	EnvPort       = "BATOOL_APP_PORT"
	EnvDBDSN      = "BATOOL_DB_DSN"
	EnvDBHost     = "BATOOL_DB_HOST"
	EnvDBUser     = "BATOOL_DB_USER"
	EnvDBName     = "BATOOL_DB_NAME"
	EnvRedisURL   = "BATOOL_REDIS_URL"
	EnvJWTSecret  = "BATOOL_JWT_SECRET"
	EnvJWTIssuer  = "BATOOL_JWT_ISSUER"
	EnvJWTExpMins = "BATOOL_JWT_EXPIRATION_MINUTES"
	EnvGCSBucket  = "BATOOL_GCS_BUCKET_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
