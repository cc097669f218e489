package main

import (
	"context"
	"flag"
	"log"
	"time"

	"maintenance-service/config"
	"maintenance-service/store"
)

func main() {
	arg := flag.String("arg", "", "Name of the script to run.")
	file := flag.String("file", "seed.json", "Seed file for the seed script.")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defer cfg.Logger.Sync()
	if cfg.StoreDriver != config.DriverPostgres {
		cfg.Logger.Fatalf("scripts need STORE_DRIVER=%s, got %s", config.DriverPostgres, cfg.StoreDriver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pg, err := store.OpenPostgres(cfg.DSN)
	if err != nil {
		cfg.Logger.Fatal(err)
	}
	defer pg.Close()

	switch *arg {
	case "migrate":
		err = pg.Migrate(ctx)
	case "seed":
		if err = pg.Migrate(ctx); err == nil {
			err = Seed(ctx, pg, *file, cfg.Logger)
		}
	default:
		cfg.Logger.Fatalf("Script %s does not exist", *arg)
	}
	if err != nil {
		cfg.Logger.Fatalf("%s failed: %v", *arg, err)
	}
	cfg.Logger.Infof("%s finished", *arg)
}
