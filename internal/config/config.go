package config

import (
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string
	PublicBaseURL string

	OAuthProviders []OAuthProviderConfig
}

// OAuthProviderConfig describes a single OAuth provider. Providers are
// configured here and handed to the auth handler at construction time;
// there is no process-wide registry.
type OAuthProviderConfig struct {
	Name         string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
}

func Load() *Config {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "streamseed"),
		DBPassword:    getEnv("DB_PASSWORD", "streamseed"),
		DBName:        getEnv("DB_NAME", "streamseed"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	if id := os.Getenv("GOOGLE_CLIENT_ID"); id != "" {
		cfg.OAuthProviders = append(cfg.OAuthProviders, OAuthProviderConfig{
			Name:         "google",
			ClientID:     id,
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     endpoints.Google,
			UserInfoURL:  "https://openidconnect.googleapis.com/v1/userinfo",
		})
	}
	if id := os.Getenv("FACEBOOK_CLIENT_ID"); id != "" {
		cfg.OAuthProviders = append(cfg.OAuthProviders, OAuthProviderConfig{
			Name:         "facebook",
			ClientID:     id,
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     endpoints.Facebook,
			UserInfoURL:  "https://graph.facebook.com/me?fields=id,email,first_name,last_name",
		})
	}

	return cfg
}

// OAuthProvider returns the configuration for a provider by name.
func (c *Config) OAuthProvider(name string) (OAuthProviderConfig, bool) {
	for _, p := range c.OAuthProviders {
		if p.Name == name {
			return p, true
		}
	}
	return OAuthProviderConfig{}, false
}

// OAuth2Config builds the oauth2 client configuration for this provider.
func (p OAuthProviderConfig) OAuth2Config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		Scopes:       p.Scopes,
		Endpoint:     p.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
