package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration. It merges file defaults and
// environment overrides to support both local and deployed runs.
type Config struct {
	ServiceName string
	HTTPPort    int

	StorePath string

	HoorinBaseURL string
	HoorinAPIKey  string

	SteadfastBaseURL string

	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	UpstreamTimeout time.Duration
}

// configFile mirrors the YAML schema used by configs/default.yaml. It is
// intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		Name     string `yaml:"name"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Hoorin struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"hoorin"`
	Steadfast struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"steadfast"`
	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	Google struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RedirectURI  string `yaml:"redirect_uri"`
	} `yaml:"google"`
	Upstream struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"upstream"`
}

// LoadConfig reads the YAML file when present, then applies COURIERDESK_*
// environment overrides. A missing file is fine; env-only runs are supported.
func LoadConfig(path string) (Config, error) {
	var file configFile
	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &file); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		ServiceName:        stringOr(file.Service.Name, "courierdesk"),
		HTTPPort:           intOr(file.Service.HTTPPort, 8080),
		StorePath:          stringOr(file.Store.Path, "data/courierdesk.json"),
		HoorinBaseURL:      stringOr(file.Hoorin.BaseURL, "https://dash.hoorin.com/api/courier/api"),
		HoorinAPIKey:       file.Hoorin.APIKey,
		SteadfastBaseURL:   stringOr(file.Steadfast.BaseURL, "https://portal.packzy.com/api/v1"),
		GeminiAPIKey:       file.Gemini.APIKey,
		GeminiModel:        stringOr(file.Gemini.Model, "gemini-2.0-flash"),
		GoogleClientID:     file.Google.ClientID,
		GoogleClientSecret: file.Google.ClientSecret,
		GoogleRedirectURI:  stringOr(file.Google.RedirectURI, "http://localhost:8080/api/v1/backup/callback"),
		UpstreamTimeout:    time.Duration(intOr(file.Upstream.TimeoutSeconds, 15)) * time.Second,
	}

	overrideString(&cfg.ServiceName, "COURIERDESK_SERVICE_NAME")
	overrideInt(&cfg.HTTPPort, "COURIERDESK_HTTP_PORT")
	overrideString(&cfg.StorePath, "COURIERDESK_STORE_PATH")
	overrideString(&cfg.HoorinBaseURL, "COURIERDESK_HOORIN_BASE_URL")
	overrideString(&cfg.HoorinAPIKey, "COURIERDESK_HOORIN_API_KEY")
	overrideString(&cfg.SteadfastBaseURL, "COURIERDESK_STEADFAST_BASE_URL")
	overrideString(&cfg.GeminiAPIKey, "COURIERDESK_GEMINI_API_KEY")
	overrideString(&cfg.GeminiModel, "COURIERDESK_GEMINI_MODEL")
	overrideString(&cfg.GoogleClientID, "COURIERDESK_GOOGLE_CLIENT_ID")
	overrideString(&cfg.GoogleClientSecret, "COURIERDESK_GOOGLE_CLIENT_SECRET")
	overrideString(&cfg.GoogleRedirectURI, "COURIERDESK_GOOGLE_REDIRECT_URI")

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("invalid http port %d", cfg.HTTPPort)
	}
	return cfg, nil
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
