package config

type Config struct {
	Port       int        `koanf:"port"`
	Feeds      Feeds      `koanf:"feeds"`
	Database   Database   `koanf:"database"`
	Poller     Poller     `koanf:"poller"`
	Logging    Logging    `koanf:"logging"`
	Prometheus Prometheus `koanf:"prometheus"`
	Sentry     Sentry     `koanf:"sentry"`
	Pyroscope  Pyroscope  `koanf:"pyroscope"`
}

type Feeds struct {
	DataUrl       string `koanf:"data_url"`
	StatusUrl     string `koanf:"status_url"`
	StatusTimeout int    `koanf:"status_timeout"` // seconds
}

type Database struct {
	Addr     string `koanf:"address"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Db       string `koanf:"db"`
	MaxPool  int    `koanf:"max_pool"`
}

type Poller struct {
	Interval   int `koanf:"interval"`    // seconds between cycles
	RunMinutes int `koanf:"run_minutes"` // total run budget, <= 0 runs until shutdown
}

type Logging struct {
	Debug      bool `koanf:"debug"`
	SaveLogs   bool `koanf:"save_logs"`
	MaxSize    int  `koanf:"max_size"` // MB
	MaxBackups int  `koanf:"max_backups"`
	MaxAge     int  `koanf:"max_age"` // days
	Compress   bool `koanf:"compress"`
}

type Prometheus struct {
	Enabled    bool      `koanf:"enabled"`
	Token      string    `koanf:"token"`
	BucketSize []float64 `koanf:"bucket_size"`
}

type Sentry struct {
	DSN              string  `koanf:"dsn"`
	SampleRate       float64 `koanf:"sample_rate"`
	EnableTracing    bool    `koanf:"enable_tracing"`
	TracesSampleRate float64 `koanf:"traces_sample_rate"`
}

type Pyroscope struct {
	ApplicationName      string `koanf:"application_name"`
	ServerAddress        string `koanf:"server_address"`
	ApiKey               string `koanf:"api_key"`
	Logger               bool   `koanf:"logger"`
	MutexProfileFraction int    `koanf:"mutex_profile_fraction"`
	BlockProfileRate     int    `koanf:"block_profile_rate"`
}

func (c *Config) GetPrometheus() Prometheus {
	return c.Prometheus
}
