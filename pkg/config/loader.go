package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	loaded = make(map[string]any)

	dotenvOnce sync.Once
)

// Load populates the config struct from environment variables according to
// its `env` field tags. The first call loads a .env file if one exists.
// Each struct type is parsed once per process; later calls return the cached
// value so scattered components see identical configuration.
//
//	type StorageConfig struct {
//	    DSN string `env:"AUDIT_DB_URL,required"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// Missing .env is fine; real environments set variables directly.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	mu.RLock()
	if cached, ok := loaded[key]; ok {
		mu.RUnlock()
		*v = cached.(T)
		return nil
	}
	mu.RUnlock()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	loaded[key] = *v
	mu.Unlock()
	return nil
}

// Reset drops all cached configuration. Intended for tests that mutate the
// environment between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = make(map[string]any)
}

func typeKey[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return fmt.Sprintf("%s.%s", t.PkgPath(), t.Name())
}
