package config

const (
	// EnvPrefix is the envconfig prefix shared by every binary.
	EnvPrefix = "verto"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "VERTO_DB_DSN"
	EnvDBHost = "VERTO_DB_HOST"
	EnvDBUser = "VERTO_DB_USER"
	EnvDBName = "VERTO_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
