package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/drblury/opweaver/info"
	"github.com/drblury/opweaver/internal/config"
	"github.com/drblury/opweaver/internal/items"
	"github.com/drblury/opweaver/operation"
	"github.com/drblury/opweaver/probe"
	"github.com/drblury/opweaver/responder"
	"github.com/drblury/opweaver/router"
)

func newApp(cfg config.Config, extra ...fx.Option) *fx.App {
	return fx.New(append([]fx.Option{module(cfg)}, extra...)...)
}

func module(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newSpecLoader,
			newMongoClient,
			items.NewStore,
			newOperations,
			newHandler,
			newServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Invoke(func(*http.Server) {}),
	)
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, handlerOpts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts)), nil
}

func newSpecLoader(cfg config.Config) operation.SpecLoader {
	loader := operation.FromData(items.Spec)
	if cfg.Spec.Path != "" {
		loader = operation.FromFile(cfg.Spec.Path)
	}
	if cfg.Spec.Validate {
		loader = operation.Validated(loader)
	}
	return loader
}

// operations is the activated registry together with the router holding
// its routes.
type operations struct {
	handle *operation.Handle
	routes *mux.Router
}

func newOperations(cfg config.Config, logger *slog.Logger, loader operation.SpecLoader, store *items.Store) (operations, error) {
	reg, err := operation.Init(context.Background(),
		operation.WithSpec(loader),
		operation.WithBaseURI(cfg.Server.BaseURI),
		operation.WithAPI(items.NewAPI(store).Handlers()),
		operation.WithGlobalMiddleware(items.Identify),
		operation.WithLogger(logger),
	)
	if err != nil {
		return operations{}, fmt.Errorf("init operations: %w", err)
	}

	routes := mux.NewRouter()
	handle, err := reg.Activate(operation.MuxHost(routes))
	if err != nil {
		return operations{}, fmt.Errorf("activate operations: %w", err)
	}
	logger.Info("operations registered", slog.Int("count", handle.RouteCount()))
	return operations{handle: handle, routes: routes}, nil
}

func newHandler(cfg config.Config, logger *slog.Logger, ops operations, client mongoClient) http.Handler {
	readiness := []info.ProbeFunc{probe.NewRegistryProbe(ops.handle)}
	if client.Client != nil {
		readiness = append(readiness, probe.NewMongoPingProbe(client.Client, nil))
	}

	ih := info.NewInfoHandler(
		info.WithInfoResponder(responder.NewResponder(responder.WithLogger(logger))),
		info.WithInfoProvider(func() any {
			return map[string]string{"name": "weaverd", "version": version}
		}),
		info.WithSpecProvider(ops.handle.Spec),
		info.WithReadinessChecks(readiness...),
	)

	var api http.Handler = ops.routes
	if cfg.Spec.ValidateRequests {
		api = validated(cfg.Server.BaseURI, router.RequestValidator(ops.handle.Spec()), api)
	}

	root := http.NewServeMux()
	root.HandleFunc("GET /status", ih.GetStatus)
	root.HandleFunc("GET /healthz", ih.GetHealthz)
	root.HandleFunc("GET /readyz", ih.GetReadyz)
	root.HandleFunc("GET /version", ih.GetVersion)
	root.HandleFunc("GET /openapi.json", ih.GetOpenAPIJSON)
	root.HandleFunc("GET /openapi.yaml", ih.GetOpenAPIYAML)
	root.Handle("/", api)

	return router.New(root,
		router.WithConfig(cfg.Router),
		router.WithLogger(logger),
	)
}

func newServer(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			logger.Info("http server listening", slog.String("address", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cfg.Server.ShutdownTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
				defer cancel()
			}
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

// validated runs validate on requests seen without the base URI, because
// the document declares paths relative to it, and hands the original path
// on to next.
func validated(baseURI string, validate func(http.Handler) http.Handler, next http.Handler) http.Handler {
	prefix := strings.TrimSuffix(baseURI, "/")
	if prefix == "" {
		return validate(next)
	}
	restore := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = prefix + r.URL.Path
		r.URL.RawPath = ""
		next.ServeHTTP(w, r)
	})
	return http.StripPrefix(prefix, validate(restore))
}
