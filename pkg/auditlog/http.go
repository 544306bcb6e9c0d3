package auditlog

import (
	"net/http"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
)

// WithRequest records the caller's IP and user agent from the HTTP request
// that triggered the protected operation.
func WithRequest(r *http.Request) EntryOption {
	return func(e *Entry) {
		if r == nil {
			return
		}
		e.SourceIP = clientip.FromRequest(r)
		e.UserAgent = r.UserAgent()
	}
}
