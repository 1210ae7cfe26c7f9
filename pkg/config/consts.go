package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "SITEOPS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "SITEOPS_APP_ENV"
	EnvPort     = "SITEOPS_APP_PORT"
	EnvDBDSN    = "SITEOPS_DB_DSN"
	EnvDBHost   = "SITEOPS_DB_HOST"
	EnvDBUser   = "SITEOPS_DB_USER"
	EnvDBName   = "SITEOPS_DB_NAME"
	EnvRedisURL = "SITEOPS_REDIS_URL"

	EnvGCPProjectID          = "SITEOPS_GCP_PROJECT_ID"
	EnvPubSubInvoiceTopic    = "SITEOPS_PUBSUB_INVOICE_TOPIC"
	EnvPubSubInvoiceFeedName = "SITEOPS_PUBSUB_INVOICE_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
