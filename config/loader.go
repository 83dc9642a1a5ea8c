package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied after loading when the file leaves fields unset.
const (
	DefaultPort          = 16181
	DefaultTimeoutMS     = 10000
	DefaultTTLMinutes    = 5
	DefaultWindowMinutes = 10
	DefaultCacheDir      = ".feed-cache"
)

// LoadAppConfig loads and validates the application configuration from the
// given YAML file. A .env file in the working directory, if present, is
// loaded first so that environment overrides work the same in development
// and in deployment.
func LoadAppConfig(path string) (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("GTFS_STATIC_PATH"); v != "" {
		cfg.GTFS.StaticPath = v
	}
	if v := os.Getenv("GTFS_STATION_ID"); v != "" {
		cfg.GTFS.StationID = v
	}
	if v := os.Getenv("TRIP_UPDATES_URL"); v != "" {
		cfg.GTFSRT.TripUpdatesURL = v
	}
	if v := os.Getenv("VEHICLE_POSITIONS_URL"); v != "" {
		cfg.GTFSRT.VehiclePositionsURL = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.GTFSRT.TimeoutMS == 0 {
		cfg.GTFSRT.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "dir"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = DefaultTTLMinutes
	}
	if cfg.Query.WindowMinutes == 0 {
		cfg.Query.WindowMinutes = DefaultWindowMinutes
	}
}
