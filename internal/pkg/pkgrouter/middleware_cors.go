package pkgrouter

import (
	"net/http"

	"github.com/rs/cors"
)

//nolint:gochecknoglobals // built once, safe for concurrent use
var corsHandler = cors.New(cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodOptions,
	},
	AllowedHeaders:   []string{"*"},
	ExposedHeaders:   []string{HeaderRequestID},
	AllowCredentials: true,
})

// middlewareCORS answers preflight requests and decorates cross-origin
// responses. It sits inside the fairings, so preflight answers still get an
// X-Request-Id and a span.
func middlewareCORS(next http.Handler) http.Handler {
	return corsHandler.Handler(next)
}
