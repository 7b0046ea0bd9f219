package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkguid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager

	// resources
	tracer *sdktrace.TracerProvider

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLogging()
	app.initLibraries()
	app.initTracer()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
