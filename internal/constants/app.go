package constants

// Application Information
const (
	AppName    = "FastCRM"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix     = "fastcrm:"
	CacheKeyAdminStats = CacheKeyPrefix + "admin:stats"
)

// OAuth2 client identifier prefix, followed by 16 hex characters.
const ClientIDPrefix = "fcrm_"
