package credstore

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Open builds a Store for the named backend. path is the file or database
// location for the file and sqlite backends; redisAddr is the redis server
// address for the redis backend.
func Open(backend, path, redisAddr string) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		return NewRedisStore(client, "shelterhub"), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown credentials backend %q", backend)
	}
}
