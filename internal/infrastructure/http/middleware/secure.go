package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions builds the header policy for a JSON-only API: nothing is
// rendered, so the CSP denies everything. Development mode drops the
// HTTPS-only directives for local requests.
func SecureOptions(isDevelopment bool) secure.Options {
	opts := secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	}
	if !isDevelopment {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return opts
}

// NewSecure wraps handlers with the security headers from opts.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}
