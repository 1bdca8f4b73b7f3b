package cardentry

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alovak/cardentry-playground/internal/devbackend"
	"github.com/alovak/cardentry-playground/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// App is the main application, it wires the controller, the backend client
// and the HTTP servers and is responsible for starting and stopping them.
type App struct {
	srv        *http.Server
	devSrv     *http.Server
	wg         *sync.WaitGroup
	Addr       string
	DevAddr    string
	Controller *Controller
	logger     *slog.Logger
	config     *Config
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "cardentry"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	backendURL := a.config.Backend.URL
	if a.config.DevBackend.Enabled {
		addr, err := a.startDevBackend()
		if err != nil {
			return fmt.Errorf("starting dev backend: %w", err)
		}
		backendURL = "http://" + addr + "/api/cards"
	}

	client := NewClient(backendURL, &http.Client{Timeout: a.config.Backend.Timeout}, a.logger)
	a.Controller = NewController(client, a.logger, a.config.CurrencySymbol)

	// first load of the list; a failure is shown in the page, not fatal
	if err := a.Controller.Refresh(context.Background()); err != nil {
		a.logger.Info("initial card list unavailable", slog.String("err", err.Error()))
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.NewStructuredLogger(a.logger))
	router.Use(chimw.Recoverer)

	api := NewAPI(a.Controller, a.logger)
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := client.List(ctx); err != nil {
			http.Error(w, "backend not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv, addr, err := a.serve("http server", a.config.HTTPAddr, router)
	if err != nil {
		a.stopDevBackend()
		return err
	}
	a.srv = srv
	a.Addr = addr

	return nil
}

func (a *App) startDevBackend() (string, error) {
	api := devbackend.NewAPI(devbackend.NewRepository(), a.logger)
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.NewStructuredLogger(a.logger.With(slog.String("server", "dev-backend"))))
	api.AppendRoutes(router)

	srv, addr, err := a.serve("dev backend", a.config.DevBackend.Addr, router)
	if err != nil {
		return "", err
	}
	a.devSrv = srv
	a.DevAddr = addr
	return addr, nil
}

func (a *App) stopDevBackend() {
	if a.devSrv == nil {
		return
	}
	a.devSrv.Shutdown(context.Background())
	a.devSrv = nil
	a.wg.Wait()
}

func (a *App) serve(name, addr string, h http.Handler) (*http.Server, string, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("listening tcp port: %w", err)
	}

	srv := &http.Server{
		Handler: h,
	}
	bound := l.Addr().String()

	a.wg.Add(1)
	go func() {
		a.logger.Info(name+" started", slog.String("addr", bound))

		if err := srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting "+name, "err", err)
			}

			a.logger.Info(name + " stopped")
		}

		a.wg.Done()
	}()

	return srv, bound, nil
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	if a.srv != nil {
		a.srv.Shutdown(context.Background())
	}
	a.stopDevBackend()

	a.wg.Wait()

	a.logger.Info("app stopped")
}
