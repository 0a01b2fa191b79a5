package storage

const (
	// ProviderAWS talks to Amazon S3 through the AWS SDK.
	ProviderAWS = "aws"
	// ProviderMinio talks to MinIO or any S3-compatible endpoint through minio-go.
	ProviderMinio = "minio"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the backend implementation (aws, minio).
	Provider string `mapstructure:"provider" default:"aws"`
	// Profile is the shared-config credential profile used by the aws provider.
	Profile string `mapstructure:"profile" default:""`
	// Region is the location used for signing requests (e.g., us-east-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// Endpoint overrides the service URL. Empty means the provider default.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for static authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for static authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxAttempts bounds the SDK's own retry/backoff policy.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
}

// IsValidProvider checks if the configured provider is supported.
func (c Config) IsValidProvider() bool {
	switch c.Provider {
	case ProviderAWS, ProviderMinio:
		return true
	default:
		return false
	}
}
