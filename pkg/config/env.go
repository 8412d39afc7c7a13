package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "CALMATE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
