package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidInterval = errors.New("error getting ST_INTERVAL: check interval must be positive")
	ErrInvalidCooldown = errors.New("error getting ST_COOLDOWN: failure cooldown must be positive")
)

type Config struct {
	Env         string        // Env is the current environment: local, dev, prod.
	APIURL      string        // APIURL is the listings search endpoint.
	Interval    time.Duration // Interval between successful check cycles.
	Cooldown    time.Duration // Cooldown before retrying after a failed cycle.
	Cron        string        // Cron overrides Interval when non-empty.
	PageDelay   time.Duration // PageDelay between paginated API requests.
	HTTPTimeout time.Duration
	DataDir     string // DataDir holds the snapshot and history JSON files.
	ReportDir   string // ReportDir holds the generated HTML reports.
	ImagesDir   string // ImagesDir holds downloaded listing photos.
	StoragePath string // StoragePath is the sqlite file for bot subscriptions.
	GitRepoPath string // GitRepoPath enables git upload when non-empty.
	Tg          Telegram
	Criteria    SearchCriteria
}

type Telegram struct {
	Token   string        // Token is a telegram bot token; empty disables the bot.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// SearchCriteria are the search filters sent to the listings API.
type SearchCriteria struct {
	CategoryMain   int   `yaml:"category_main"`
	CategoryType   int   `yaml:"category_type"`
	PerPage        int   `yaml:"per_page"`
	PriceFrom      int   `yaml:"price_from"`
	PriceTo        int   `yaml:"price_to"`
	UsableAreaFrom int   `yaml:"usable_area_from"`
	DistrictIDs    []int `yaml:"locality_district_ids"`
}

// DefaultCriteria returns the built-in search: family houses for sale in the
// Ostrava districts.
func DefaultCriteria() SearchCriteria {
	return SearchCriteria{
		CategoryMain:   2,
		CategoryType:   1,
		PerPage:        60,
		PriceFrom:      4948302,
		PriceTo:        21623887,
		UsableAreaFrom: 200,
		DistrictIDs:    []int{65, 64, 66, 67, 69},
	}
}

// MustLoad loads the configuration from environment variables (and an
// optional .env file) and returns a Config struct. It panics on invalid
// startup configuration.
func MustLoad() *Config {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("ST")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("API_URL", "https://www.sreality.cz/api/cs/v2/estates")
	viper.SetDefault("INTERVAL", "6h")
	viper.SetDefault("COOLDOWN", "5m")
	viper.SetDefault("PAGE_DELAY", "1s")
	viper.SetDefault("HTTP_TIMEOUT", "10s")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("REPORT_DIR", "reports")
	viper.SetDefault("IMAGES_DIR", "property_images")
	viper.SetDefault("STORAGE_PATH", "tracker.db")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	cfg := &Config{
		Env:         viper.GetString("ENV"),
		APIURL:      viper.GetString("API_URL"),
		Interval:    viper.GetDuration("INTERVAL"),
		Cooldown:    viper.GetDuration("COOLDOWN"),
		Cron:        viper.GetString("CRON"),
		PageDelay:   viper.GetDuration("PAGE_DELAY"),
		HTTPTimeout: viper.GetDuration("HTTP_TIMEOUT"),
		DataDir:     viper.GetString("DATA_DIR"),
		ReportDir:   viper.GetString("REPORT_DIR"),
		ImagesDir:   viper.GetString("IMAGES_DIR"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		GitRepoPath: viper.GetString("GIT_REPO_PATH"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}

	if cfg.Interval <= 0 {
		panic(ErrInvalidInterval)
	}
	if cfg.Cooldown <= 0 {
		panic(ErrInvalidCooldown)
	}

	criteria, err := loadCriteria(viper.GetString("CRITERIA_PATH"))
	if err != nil {
		panic(err)
	}
	cfg.Criteria = criteria

	return cfg
}

// loadCriteria reads search criteria from a YAML file. An empty or missing
// path falls back to the built-in defaults.
func loadCriteria(path string) (SearchCriteria, error) {
	if path == "" {
		return DefaultCriteria(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCriteria(), nil
		}
		return SearchCriteria{}, fmt.Errorf("failed to read criteria file %s: %w", path, err)
	}

	criteria := DefaultCriteria()
	if err = yaml.Unmarshal(data, &criteria); err != nil {
		return SearchCriteria{}, fmt.Errorf("failed to parse criteria file %s: %w", path, err)
	}

	return criteria, nil
}
