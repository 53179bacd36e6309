package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snapbook/internal/blob"
	"snapbook/internal/config"
	"snapbook/internal/http/handlers"
	applog "snapbook/internal/log"
	"snapbook/internal/memstore"
	"snapbook/internal/notify"
	"snapbook/internal/repos"
	"snapbook/internal/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run wires and serves the app. Every exit path returns through the deferred
// closers so database, redis and broker handles are released.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
			applog.SetOutput(mw)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	hasher := services.Hasher{Cost: cfg.BcryptCost}
	if err := services.Seed(ctx, stores.Catalog, stores.Accounts, hasher, services.SeedOptions{
		AdminUsername:        cfg.AdminUsername,
		AdminPassword:        cfg.AdminPassword,
		PhotographerPassword: cfg.SeedPhotographerPassword,
	}); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	blobs, err := openBlobs(cfg)
	if err != nil {
		return err
	}

	sender, closeSender, err := openSender(cfg)
	if err != nil {
		return err
	}
	defer closeSender()
	dispatcher := notify.NewDispatcher(sender, cfg.NotifyQueueSize)
	defer dispatcher.Close()

	deps := handlers.NewDeps(stores, blobs, dispatcher, hasher, cfg.CookieSecure)
	app := handlers.NewApp(deps, handlers.Options{
		TemplatesDir: cfg.TemplatesDir,
		StaticDir:    cfg.StaticDir,
		MediaDir:     cfg.MediaDir,
		CookieSecure: cfg.CookieSecure,
		AccessLog:    true,
	})
	log.Printf("[static] /static -> %s", cfg.StaticDir)
	log.Printf("[static] /media  -> %s", cfg.MediaDir)

	go func() {
		<-ctx.Done()
		log.Printf("[shutdown] draining")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[shutdown] %v", err)
		}
	}()

	if err := app.Listen(cfg.Addr()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func openStores(ctx context.Context, cfg config.Config) (handlers.Stores, func(), error) {
	var st handlers.Stores
	closers := []func(){}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.StoreDriver {
	case "memory":
		st = handlers.Stores{
			Accounts: memstore.NewAccounts(),
			Catalog:  memstore.NewPhotographers(),
			Bookings: memstore.NewBookings(),
			Sessions: memstore.NewSessions(),
		}
	default:
		db, err := repos.OpenDB(ctx, cfg.StoreDriver, cfg.DBDSN)
		if err != nil {
			return st, closeAll, err
		}
		closers = append(closers, func() { _ = db.Close() })
		st = handlers.Stores{
			Accounts: repos.NewAccountRepo(db),
			Catalog:  repos.NewPhotographerRepo(db),
			Bookings: repos.NewBookingRepo(db),
			Sessions: repos.NewSessionRepo(db),
		}
	}

	switch cfg.SessionStore {
	case "redis":
		rs, err := repos.NewRedisSessionStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			closeAll()
			return st, func() {}, err
		}
		closers = append(closers, func() { _ = rs.Close() })
		st.Sessions = rs
	case "memory":
		st.Sessions = memstore.NewSessions()
	}
	log.Printf("[store] driver=%s sessions=%s", cfg.StoreDriver, cfg.SessionStore)
	return st, closeAll, nil
}

func openBlobs(cfg config.Config) (services.BlobStore, error) {
	if cfg.BlobDriver == "s3" {
		return blob.NewS3(blob.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return blob.NewLocal(cfg.MediaDir), nil
}

func openSender(cfg config.Config) (notify.Sender, func(), error) {
	if cfg.NotifyDriver == "amqp" {
		s, err := notify.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return notify.NewLog(), func() {}, nil
}
