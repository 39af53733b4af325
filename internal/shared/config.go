package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	DataDir      string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	LTABase      string
	LTAKey       string
	Workers      int
	FetchTimeout time.Duration
	SnapshotTTL  time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8084"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		DataDir:      env("DATA_DIR", "data"),
		RedisAddr:    env("REDIS_ADDR", ""),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		LTABase:      env("LTA_BASE_URL", "https://datamall2.mytransport.sg/ltaodataservice"),
		LTAKey:       env("LTA_ACCOUNT_KEY", ""),
		Workers:      atoi("LOAD_WORKERS", 4),
		FetchTimeout: time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		SnapshotTTL:  time.Duration(atoi("SNAPSHOT_TTL_SECONDS", 86400)) * time.Second,
	}
	if c.LTAKey == "" {
		log.Warn().Msg("LTA_ACCOUNT_KEY is empty; bus stop feed will load without credentials")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
