package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-package-service/internal/adapters/cache"
	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/adapters/watcher"
	"tour-package-service/internal/api"
	"tour-package-service/internal/catalog"
	"tour-package-service/internal/config"
	"tour-package-service/internal/platform/db"
	"tour-package-service/internal/platform/metrics"
	"tour-package-service/internal/ports"
	"tour-package-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL catalog, Redis cache, seed watcher) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.toml"))
	if err != nil {
		log.Fatal(err)
	}
	cfg.LogSummary()

	dialect, err := repositories.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, dialect, cfg.Seed.Path); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := repositories.NewSQLCatalogRepository(conn)
	cat, err := catalog.Load(ctx, repo)
	if err != nil {
		log.Fatal(err)
	}
	holder := catalog.NewHolder(cat)
	log.Printf("catalog loaded version=%s regions=%d tours=%d attractions=%d links=%d",
		cat.Version(), len(cat.Regions()), len(cat.Tours()), len(cat.Attractions()), cat.LinkCount())

	// Results go to Redis when it is reachable, otherwise to the catalog database.
	sqlCache := cache.NewSQLPackageCache(conn, dialect)
	var pkgCache ports.PackageCache = sqlCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable addr=%s err=%v (caching in database)", cfg.Redis.Addr, err)
		} else {
			pkgCache = cache.NewRedisPackageCache(client)
		}
	}

	svc := services.NewPackageService(holder, pkgCache, cfg.CacheTTL())

	if cfg.Seed.Watch {
		w, err := watcher.NewSeedWatcher(cfg.Seed.Path, func(ctx context.Context) error {
			if n, err := sqlCache.DeleteExpired(ctx); err != nil {
				log.Printf("package cache cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("package cache cleanup removed=%d", n)
			}
			return reloadCatalog(ctx, conn, dialect, cfg.Seed.Path, holder, repo)
		})
		if err != nil {
			log.Fatal(err)
		}
		defer w.Stop()
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("seed watcher stopped: %v", err)
			}
		}()
	}

	router := api.NewRouter(holder, svc, api.RouterOptions{
		RateLimit:             cfg.Server.RateLimit,
		RateBurst:             cfg.Server.RateBurst,
		DefaultBranchAndBound: cfg.Search.BranchAndBound,
		DefaultPolicy:         cfg.Search.Policy,
	})

	log.Printf("Server listening addr=:%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file not found path=%s (using existing catalog data)", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// reloadCatalog reseeds the database from the seed file and swaps in a fresh snapshot.
func reloadCatalog(
	ctx context.Context,
	conn *sql.DB,
	dialect repositories.Dialect,
	seedPath string,
	holder *catalog.Holder,
	src ports.CatalogSource,
) error {
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("reload catalog: %w", err)
	}

	cat, err := holder.Reload(ctx, src)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("reload catalog: %w", err)
	}

	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	log.Printf("catalog reloaded version=%s tours=%d", cat.Version(), len(cat.Tours()))
	return nil
}
