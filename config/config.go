// backend/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type WeatherConfig struct {
	BaseURL          string `yaml:"base_url"`
	FetchTimeoutStr  string `yaml:"fetch_timeout"`
	CacheTTLStr      string `yaml:"cache_ttl"`
	ObservationHours int    `yaml:"observation_hours"`
	FetchTimeout     time.Duration
	CacheTTL         time.Duration
}

type PortalConfig struct {
	URL               string `yaml:"url"`
	UserAgent         string `yaml:"user_agent"`
	DisclaimerRetries int    `yaml:"disclaimer_retries"`
	TableWaitStr      string `yaml:"table_wait"`
	DownloadWaitStr   string `yaml:"download_wait"`
	TableWait         time.Duration
	DownloadWait      time.Duration
}

// PortalSelectorsConfig pins the portal's DOM contract in one place so a
// page redesign is a config change, not a code change.
type PortalSelectorsConfig struct {
	SearchInputName  string `yaml:"search_input_name"`
	DisclaimerText   string `yaml:"disclaimer_text"`
	ResultTableClass string `yaml:"result_table_class"`
	LocationHeader   string `yaml:"location_header"`
	ExportIconClass  string `yaml:"export_icon_class"`
	NoResultsMarker  string `yaml:"no_results_marker"`
}

type AIConfig struct {
	BaseURL        string   `yaml:"base_url"`
	APIKey         string   `yaml:"api_key"`
	Models         []string `yaml:"models"`
	CallTimeoutStr string   `yaml:"call_timeout"`
	CallTimeout    time.Duration
}

type RunwaysConfig struct {
	CSVPath string `yaml:"csv_path"`
}

type Config struct {
	Server    ServerConfig          `yaml:"server"`
	Weather   WeatherConfig         `yaml:"weather"`
	Portal    PortalConfig          `yaml:"portal"`
	Selectors PortalSelectorsConfig `yaml:"portal_selectors"`
	AI        AIConfig              `yaml:"ai"`
	Runways   RunwaysConfig         `yaml:"runways"`
}

var AppConfig Config

// LoadConfig reads configuration from a YAML file, falling back to the
// built-in production defaults when the file is absent. The defaults
// are seeded before the file is unmarshalled, so a field the file sets
// explicitly wins even when set to zero. Environment variables
// AI_BASE_URL and AI_API_KEY override the AI endpoint fields so
// credentials can live in .env instead of the config file.
func LoadConfig(configPath string) error {
	AppConfig = defaultConfig()

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("WARN Config: %s not found, using built-in defaults", configPath)
			} else {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(file, &AppConfig); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("AI_BASE_URL"); v != "" {
		AppConfig.AI.BaseURL = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		AppConfig.AI.APIKey = v
	}

	return parseDurations(&AppConfig)
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Weather: WeatherConfig{
			BaseURL:          "https://aviationweather.gov",
			FetchTimeoutStr:  "15s",
			CacheTTLStr:      "600s",
			ObservationHours: 6,
		},
		Portal: PortalConfig{
			URL:               "https://notams.aim.faa.gov/notamSearch/",
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
			DisclaimerRetries: 5,
			TableWaitStr:      "30s",
			DownloadWaitStr:   "45s",
		},
		Selectors: PortalSelectorsConfig{
			SearchInputName:  "designatorsForLocation",
			DisclaimerText:   "I've read and understood above statements",
			ResultTableClass: "table.table.table-striped",
			LocationHeader:   "Location",
			ExportIconClass:  "span.icon-excel",
			NoResultsMarker:  "No NOTAMs match your search criteria",
		},
		AI: AIConfig{
			BaseURL:        "https://api.openai.com",
			Models:         []string{"gpt-4o-mini", "gemini-2.5-flash", "grok-3", "gpt-4.1-mini"},
			CallTimeoutStr: "60s",
		},
		Runways: RunwaysConfig{CSVPath: "assets/runways.csv"},
	}
}

func parseDurations(c *Config) error {
	var err error
	if c.Weather.FetchTimeout, err = time.ParseDuration(c.Weather.FetchTimeoutStr); err != nil {
		return fmt.Errorf("failed to parse weather fetch_timeout: %w", err)
	}
	if c.Weather.CacheTTL, err = time.ParseDuration(c.Weather.CacheTTLStr); err != nil {
		return fmt.Errorf("failed to parse weather cache_ttl: %w", err)
	}
	if c.Portal.TableWait, err = time.ParseDuration(c.Portal.TableWaitStr); err != nil {
		return fmt.Errorf("failed to parse portal table_wait: %w", err)
	}
	if c.Portal.DownloadWait, err = time.ParseDuration(c.Portal.DownloadWaitStr); err != nil {
		return fmt.Errorf("failed to parse portal download_wait: %w", err)
	}
	if c.AI.CallTimeout, err = time.ParseDuration(c.AI.CallTimeoutStr); err != nil {
		return fmt.Errorf("failed to parse ai call_timeout: %w", err)
	}
	return nil
}
