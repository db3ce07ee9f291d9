package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/kv"
	"Storefront/pkg/kit"
)

func main() {
	service := "auth"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8081")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")

	var store auth.UserStore
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		store = auth.NewPostgresStore(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory user store")
		store = auth.NewMemStore()
	}

	var kvs kv.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		kvs = kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), log)
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory session store")
		kvs = kv.NewMemStore(log)
	}

	s := &auth.Server{
		Log:      log,
		Store:    store,
		Sessions: &auth.SessionStore{KV: kvs},
		JWT:      auth.NewTokenMaker(jwtSecret),
	}

	reg := prometheus.NewRegistry()
	h := auth.NewHandler(s, auth.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
