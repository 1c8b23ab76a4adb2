package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBaseURL is the production host used by the client when API_BASE_URL is unset.
const DefaultAPIBaseURL = "https://api.corretora-xpto.com.br/v1"

// ServerConfig holds every setting the API process reads from the environment.
type ServerConfig struct {
	Port               int      `env:"PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	PoliciesAPIEnabled bool     `env:"POLICIES_API_ENABLED" envDefault:"false"`

	DynamoDB DynamoDBConfig
	Tables   TablesConfig
	Auth     AuthConfig
	Payments PaymentsConfig
}

// DynamoDBConfig is local-friendly: DynamoDB Local does not validate credentials,
// but the AWS SDK requires them.
type DynamoDBConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
}

type TablesConfig struct {
	Proposals string `env:"PROPOSALS_TABLE" envDefault:"proposals"`
	Counters  string `env:"COUNTERS_TABLE" envDefault:"counters"`
	Users     string `env:"USERS_TABLE" envDefault:"users"`
	Policies  string `env:"POLICIES_TABLE" envDefault:"policies"`
	Payments  string `env:"PREMIUM_PAYMENTS_TABLE" envDefault:"premium_payments"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string `env:"MERCADOPAGO_ACCESS_TOKEN"`
	MockMode               bool   `env:"PAYMENT_GATEWAY_MOCK" envDefault:"false"`
	TestPayerEmail         string `env:"MERCADOPAGO_TEST_PAYER_EMAIL"`
}

// ClientConfig configures the Go client core (internal/client).
type ClientConfig struct {
	APIBaseURL         string        `env:"API_BASE_URL" envDefault:"https://api.corretora-xpto.com.br/v1"`
	PoliciesAPIEnabled bool          `env:"POLICIES_API_ENABLED" envDefault:"false"`
	SessionFile        string        `env:"SESSION_FILE" envDefault:".corretora/session.json"`
	Timeout            time.Duration `env:"CLIENT_TIMEOUT" envDefault:"0s"`
}

// LoadServer parses ServerConfig from the process environment.
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadClient parses ClientConfig from the process environment.
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
