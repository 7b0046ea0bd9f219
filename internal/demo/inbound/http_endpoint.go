package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgerror"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/reqtrace/internal/pkg/pkgtrace"
)

type HTTPEndpoint struct{}

// Abc greets inside the request span and answers 404 on purpose, so the
// completion line shows a non-200 status next to the request ID.
func (h *HTTPEndpoint) Abc(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.CurrentRequestID(r)
	if err != nil {
		return nil, err
	}

	span, err := pkgtrace.CurrentSpan(r)
	if err != nil {
		return nil, err
	}

	ctx, exit := span.Enter(ctx)
	defer exit()

	slog.InfoContext(ctx, "Hello World")

	resp := AbcResponse{Msg: "Hello World", RequestID: id}

	output, err := json.Marshal(resp)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	span.Record(pkgtrace.FieldOutput, string(output))

	return resp, nil
}
