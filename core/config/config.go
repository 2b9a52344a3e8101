package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = map[reflect.Type]interface{}{}
)

// loadDotenv loads a .env file from the working directory exactly once
// per process. A missing file is not an error — env vars set any other
// way still work.
func loadDotenv() {
	dotenvOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load()
		}
	})
}

// Load populates a new T from environment variables (and .env, loaded
// once per process) using struct `env` tags, and caches the result keyed
// by T so repeated calls for the same type return the identical value
// without re-parsing the environment.
func Load[T any]() (T, error) {
	loadDotenv()

	t := reflect.TypeOf((*T)(nil)).Elem()

	cacheMu.RLock()
	if cached, ok := cache[t]; ok {
		cacheMu.RUnlock()
		return cached.(T), nil
	}
	cacheMu.RUnlock()

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", t, err)
	}

	cacheMu.Lock()
	cache[t] = cfg
	cacheMu.Unlock()

	return cfg, nil
}

// MustLoad is Load, panicking on failure. Intended for startup paths
// where a misconfigured environment should fail fast.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
