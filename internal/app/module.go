package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/reqtrace/internal/demo"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.demo.enabled") {
		closer, err := demo.New(demo.Dependency{
			Router: a.router,
		})
		if err != nil {
			slog.Error("failed to init module demo", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Demo"] = closer
		}
	}
}
