package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	// StaticPath points at a GTFS directory or zip archive on disk.
	StaticPath string `yaml:"staticPath" validate:"required"`
	// StationID is the default parent station queried when the caller
	// does not name one.
	StationID string `yaml:"stationID"`
	// Timezone used to render live Unix timestamps as wall-clock times,
	// e.g. "Europe/Sofia". Empty means the process-local zone.
	Timezone string `yaml:"timezone"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// CacheConfig selects and locates the live-feed cache backend.
type CacheConfig struct {
	Backend    string `yaml:"backend" validate:"omitempty,oneof=dir sqlite"`
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlitePath"`
	TTLMinutes int    `yaml:"ttlMinutes" validate:"gte=0"`
}

// QueryConfig carries defaults for caller-supplied query parameters.
type QueryConfig struct {
	WindowMinutes int `yaml:"windowMinutes" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	GTFS   GTFSConfig   `yaml:"gtfs" validate:"required"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
	Cache  CacheConfig  `yaml:"cache"`
	Query  QueryConfig  `yaml:"query"`
}
