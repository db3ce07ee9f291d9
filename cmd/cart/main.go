package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/kv"
	"Storefront/pkg/kit"
)

func main() {
	service := "cart"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8083")

	var kvs kv.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		kvs = kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), log)
	} else {
		log.Warn("REDIS_ADDR not set, carts will not survive restarts")
		kvs = kv.NewMemStore(log)
	}

	s := &cart.Server{
		Store: cart.NewStore(kvs, log),
		Log:   log,
	}

	reg := prometheus.NewRegistry()
	h := cart.NewHandler(s, cart.HTTPDeps{
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
