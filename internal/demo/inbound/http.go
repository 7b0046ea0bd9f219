package inbound

import (
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgrouter"
)

func RegisterHTTPEndpoint(r *pkgrouter.Router) {
	end := &HTTPEndpoint{}

	r.GET("/abc", end.Abc)
}
