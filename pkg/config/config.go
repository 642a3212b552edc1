package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
)

type SolarAPIConfig struct {
	BaseURL string
	Token   string
	UserID  string
}

type RouterAPIConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	OrgID        string
	GroupID      string
}

type PollConfig struct {
	SolarInterval  time.Duration
	RouterInterval time.Duration
	BatchSize      int
	BatchDelay     time.Duration
}

type Config struct {
	DBType string
	DBPath string
	DBDSN  string

	HttpHostPort string
	DefaultRate  float64
	DefaultBurst int

	Location         *time.Location
	HardwareSpecPath string

	Solar  SolarAPIConfig
	Router RouterAPIConfig
	Poll   PollConfig

	WeatherBaseURL    string
	WeatherCacheTTL   time.Duration
	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocoderInterval  time.Duration
	HttpClientTimeout time.Duration

	ClusterThresholdMeters float64
	AcceptZeroFix          bool

	RedisAddr         string
	RedisAlertChannel string
}

const (
	minPollBatchSize = 3
	maxPollBatchSize = 5
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(common.EnvKeyFleetDBType, "file")
	v.SetDefault(common.EnvKeyFleetDbPath, "fleet.db")
	v.SetDefault(common.EnvKeyFleetHttpHostPort, ":1080")
	v.SetDefault(common.EnvKeyFleetDefaultRate, 5.0)
	v.SetDefault(common.EnvKeyFleetDefaultBurst, 10)
	v.SetDefault(common.EnvKeyFleetTimezone, "Local")

	v.SetDefault(common.EnvKeySolarApiBaseURL, "https://vrmapi.victronenergy.com/v2")
	v.SetDefault(common.EnvKeyRouterApiBaseURL, "https://api.ic.peplink.com")

	v.SetDefault(common.EnvKeyWeatherApiBaseURL, "https://api.open-meteo.com")
	v.SetDefault(common.EnvKeyWeatherCacheTTL, "1h")
	v.SetDefault(common.EnvKeyGeocoderBaseURL, "https://nominatim.openstreetmap.org")
	v.SetDefault(common.EnvKeyGeocoderUserAgent, "trailer-fleet-service/1.0")
	v.SetDefault(common.EnvKeyGeocoderInterval, "1100ms")

	v.SetDefault(common.EnvKeySolarPollInterval, "5m")
	v.SetDefault(common.EnvKeyRouterPollInterval, "2m")
	v.SetDefault(common.EnvKeyPollBatchSize, 4)
	v.SetDefault(common.EnvKeyPollBatchDelay, "750ms")
	v.SetDefault(common.EnvKeyHttpClientTimeout, "20s")

	v.SetDefault(common.EnvKeyClusterThresholdMeters, 300.0)
	v.SetDefault(common.EnvKeyGPSAcceptZeroFix, false)

	v.SetDefault(common.EnvKeyRedisAlertChannel, "fleet:alerts:deficit")
}

// Load reads the configuration from the environment. godotenv is expected to
// have populated the environment from .env before this runs.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString(common.EnvKeyFleetTimezone))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", common.EnvKeyFleetTimezone, err)
	}

	cfg := &Config{
		DBType: strings.TrimSpace(v.GetString(common.EnvKeyFleetDBType)),
		DBPath: v.GetString(common.EnvKeyFleetDbPath),
		DBDSN:  v.GetString(common.EnvKeyFleetDbDSN),

		HttpHostPort: strings.TrimSpace(v.GetString(common.EnvKeyFleetHttpHostPort)),
		DefaultRate:  v.GetFloat64(common.EnvKeyFleetDefaultRate),
		DefaultBurst: v.GetInt(common.EnvKeyFleetDefaultBurst),

		Location:         loc,
		HardwareSpecPath: v.GetString(common.EnvKeyFleetHardwareSpecPath),

		Solar: SolarAPIConfig{
			BaseURL: strings.TrimRight(v.GetString(common.EnvKeySolarApiBaseURL), "/"),
			Token:   v.GetString(common.EnvKeySolarApiToken),
			UserID:  v.GetString(common.EnvKeySolarUserID),
		},
		Router: RouterAPIConfig{
			BaseURL:      strings.TrimRight(v.GetString(common.EnvKeyRouterApiBaseURL), "/"),
			ClientID:     v.GetString(common.EnvKeyRouterClientID),
			ClientSecret: v.GetString(common.EnvKeyRouterClientSecret),
			OrgID:        v.GetString(common.EnvKeyRouterOrgID),
			GroupID:      v.GetString(common.EnvKeyRouterGroupID),
		},
		Poll: PollConfig{
			SolarInterval:  v.GetDuration(common.EnvKeySolarPollInterval),
			RouterInterval: v.GetDuration(common.EnvKeyRouterPollInterval),
			BatchSize:      clamp(v.GetInt(common.EnvKeyPollBatchSize), minPollBatchSize, maxPollBatchSize),
			BatchDelay:     v.GetDuration(common.EnvKeyPollBatchDelay),
		},

		WeatherBaseURL:    strings.TrimRight(v.GetString(common.EnvKeyWeatherApiBaseURL), "/"),
		WeatherCacheTTL:   v.GetDuration(common.EnvKeyWeatherCacheTTL),
		GeocoderBaseURL:   strings.TrimRight(v.GetString(common.EnvKeyGeocoderBaseURL), "/"),
		GeocoderUserAgent: v.GetString(common.EnvKeyGeocoderUserAgent),
		GeocoderInterval:  v.GetDuration(common.EnvKeyGeocoderInterval),
		HttpClientTimeout: v.GetDuration(common.EnvKeyHttpClientTimeout),

		ClusterThresholdMeters: v.GetFloat64(common.EnvKeyClusterThresholdMeters),
		AcceptZeroFix:          v.GetBool(common.EnvKeyGPSAcceptZeroFix),

		RedisAddr:         v.GetString(common.EnvKeyRedisAddr),
		RedisAlertChannel: v.GetString(common.EnvKeyRedisAlertChannel),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBType {
	case "file", "memory":
	case "postgres":
		if c.DBDSN == "" {
			return fmt.Errorf("%s is required when %s=postgres", common.EnvKeyFleetDbDSN, common.EnvKeyFleetDBType)
		}
	default:
		return fmt.Errorf("unknown %s: %q", common.EnvKeyFleetDBType, c.DBType)
	}

	if c.Poll.SolarInterval <= 0 || c.Poll.RouterInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if c.ClusterThresholdMeters <= 0 {
		return fmt.Errorf("%s must be positive", common.EnvKeyClusterThresholdMeters)
	}
	return nil
}

func (c *Config) SolarEnabled() bool {
	return c.Solar.Token != "" && c.Solar.UserID != ""
}

func (c *Config) RouterEnabled() bool {
	return c.Router.ClientID != "" && c.Router.ClientSecret != "" && c.Router.OrgID != ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
