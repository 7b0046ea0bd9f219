package demo

import (
	"context"

	"github.com/shandysiswandi/reqtrace/internal/demo/inbound"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgrouter"
)

type Dependency struct {
	Router *pkgrouter.Router
}

func New(dep Dependency) (func(context.Context) error, error) {
	inbound.RegisterHTTPEndpoint(dep.Router)

	return nil, nil
}
