package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkglog"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgtrace"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkguid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

//nolint:gochecknoglobals // fallback values when neither file nor env sets a key
var defaults = map[string]any{
	"service.name":               "reqtrace",
	"server.address.http":        ":8000",
	"server.timeout.read_header": "10s",
	"log.type":                   pkglog.FormatFormatted.String(),
	"log.level":                  pkglog.LevelNormal.String(),
	"goroutine.max":              100,
	"modules.demo.enabled":       true,
	"tracing.otlp.endpoint":      "",
}

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, defaults)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

// initLogging installs the process-wide logger. Serving without it would lose
// every correlated line, so a failure stops the process.
func (a *App) initLogging() {
	err := pkglog.InitLogging(pkglog.Config{
		Format:  pkglog.ParseFormat(a.config.GetString("log.type")),
		Level:   pkglog.ParseLevel(a.config.GetString("log.level")),
		Service: a.config.GetString("service.name"),
	}, os.Stdout)
	if err != nil {
		slog.Error("failed to init logging", "error", err)
		os.Exit(1)
	}
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()
}

func (a *App) initTracer() {
	var opts []sdktrace.TracerProviderOption

	if endpoint := a.config.GetString("tracing.otlp.endpoint"); endpoint != "" {
		exporter, err := pkgtrace.NewOTLPExporter(a.ctx, endpoint)
		if err != nil {
			slog.Error("failed to init span exporter", "endpoint", endpoint, "error", err)
			os.Exit(1)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	} else {
		slog.Info("span export disabled, span fields appear in log lines only")
	}

	a.tracer = pkgtrace.NewProvider(a.config.GetString("service.name"), opts...)
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid, a.tracer.Tracer(pkgtrace.TracerName))

	readHeaderTimeout := a.config.GetDuration("server.timeout.read_header")
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           a.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Tracer Provider"] = func(ctx context.Context) error {
		return a.tracer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
