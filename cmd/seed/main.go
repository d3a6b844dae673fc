// Command seed writes the default credential set into the configured
// store. Normal startup already seeds an empty store; this tool exists to
// reseed explicitly, or to wipe and restore the defaults with -reset.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"clubroster/internal/config"
	"clubroster/internal/identity"
	"clubroster/internal/store"
)

func main() {
	reset := flag.Bool("reset", false, "discard existing users and reseed the defaults")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	svc := identity.NewService(st)
	if *reset {
		if err := svc.Reseed(ctx); err != nil {
			logrus.Fatalf("reseed: %v", err)
		}
	} else if err := svc.Bootstrap(ctx); err != nil {
		logrus.Fatalf("seed: %v", err)
	}
	logrus.WithField("backend", cfg.StoreBackend).Info("seed complete")
}

func openStore(ctx context.Context, cfg config.App) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case "postgres":
		return store.NewPostgres(ctx, cfg.DatabaseURL)
	case "file", "":
		return store.NewFile(cfg.StoreDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
