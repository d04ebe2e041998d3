package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"jobview-engine/internal/config"
	"jobview-engine/internal/events"
	"jobview-engine/internal/httpapi"
	"jobview-engine/internal/logging"
	"jobview-engine/internal/order"
	"jobview-engine/internal/state"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("[engine] stopped")
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if err := vr.Err(); err != nil {
		return err
	}
	if err := logging.Configure(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
		return err
	}
	for _, w := range vr.Warnings {
		log.Warn("[config] " + w)
	}

	sorter, err := order.NewSorter(cfg.Sorting.Locale)
	if err != nil {
		return err
	}
	hub := events.NewHub()
	store := state.NewStore(sorter, hub)

	handler := httpapi.NewHandler(httpapi.Deps{
		Store:         store,
		Hub:           hub,
		Cfg:           cfg,
		UploadLimiter: httpapi.NewClientLimiter(cfg.Upload.PerSecond, cfg.Upload.Burst),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort(cfg.App.Host, strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"addr": "http://" + ln.Addr().String(), "locale": sorter.Locale()}).Info("[engine] listening")

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Open /events streams end when we are asked to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("[engine] shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
