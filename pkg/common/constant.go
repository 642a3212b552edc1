package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFleetDBType string = "FLEET_DB_TYPE"
	EnvKeyFleetDbPath string = "FLEET_DB_PATH"
	EnvKeyFleetDbDSN  string = "FLEET_DB_DSN"

	EnvKeyFleetHttpHostPort string = "FLEET_HTTP_HOST_PORT"

	EnvKeyFleetDefaultRate  string = "FLEET_DEFAULT_RATE"
	EnvKeyFleetDefaultBurst string = "FLEET_DEFAULT_BURST"

	EnvKeyFleetTimezone         string = "FLEET_TIMEZONE"
	EnvKeyFleetLogDir           string = "FLEET_LOG_DIR"
	EnvKeyFleetHardwareSpecPath string = "FLEET_HARDWARE_SPEC_PATH"

	EnvKeySolarApiBaseURL string = "SOLAR_API_BASE_URL"
	EnvKeySolarApiToken   string = "SOLAR_API_TOKEN"
	EnvKeySolarUserID     string = "SOLAR_USER_ID"

	EnvKeyRouterApiBaseURL   string = "ROUTER_API_BASE_URL"
	EnvKeyRouterClientID     string = "ROUTER_CLIENT_ID"
	EnvKeyRouterClientSecret string = "ROUTER_CLIENT_SECRET"
	EnvKeyRouterOrgID        string = "ROUTER_ORG_ID"
	EnvKeyRouterGroupID      string = "ROUTER_GROUP_ID"

	EnvKeyWeatherApiBaseURL string = "WEATHER_API_BASE_URL"
	EnvKeyGeocoderBaseURL   string = "GEOCODER_BASE_URL"
	EnvKeyGeocoderUserAgent string = "GEOCODER_USER_AGENT"
	EnvKeyGeocoderInterval  string = "GEOCODER_INTERVAL"

	EnvKeySolarPollInterval  string = "SOLAR_POLL_INTERVAL"
	EnvKeyRouterPollInterval string = "ROUTER_POLL_INTERVAL"
	EnvKeyPollBatchSize      string = "POLL_BATCH_SIZE"
	EnvKeyPollBatchDelay     string = "POLL_BATCH_DELAY"
	EnvKeyHttpClientTimeout  string = "HTTP_CLIENT_TIMEOUT"

	EnvKeyWeatherCacheTTL        string = "WEATHER_CACHE_TTL"
	EnvKeyClusterThresholdMeters string = "CLUSTER_THRESHOLD_METERS"
	EnvKeyGPSAcceptZeroFix       string = "GPS_ACCEPT_ZERO_FIX"

	EnvKeyRedisAddr         string = "REDIS_ADDR"
	EnvKeyRedisAlertChannel string = "REDIS_ALERT_CHANNEL"

	LoggerNameFleetCore     string = "fleet_core"
	LoggerNamePoller        string = "poller"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameStore         string = "store"
	LoggerNameNotify        string = "notify"

	LoggerFieldCategory string = "category"

	LoggerCategoryIdentity string = "identity"
	LoggerCategoryLedger   string = "ledger"
	LoggerCategoryAlert    string = "alert"
	LoggerCategoryCluster  string = "cluster"
	LoggerCategoryScore    string = "score"
	LoggerCategoryWeather  string = "weather"
	LoggerCategoryPoll     string = "poll"
	LoggerCategoryPersist  string = "persist"
)
