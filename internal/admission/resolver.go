// Package admission derives the stable identity used for rate limiting.
package admission

import (
	"net/http"
	"strings"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// Key prefixes distinguish the identity source in the counter store
const (
	SessionKeyPrefix = "session:"
	IPKeyPrefix      = "ip:"
)

// ResolveKey derives the AdmissionKey for a request.
//
// A server-minted session cookie is preferred: it survives IP churn behind
// NATs and mobile networks. When no cookie is present the first entry of the
// forwarded-address chain is used, and "ip:unknown" as a last resort. The
// session id's authenticity is not validated here; tamper-resistance relies
// on the cookie being server-issued and opaque.
func ResolveKey(r *http.Request) string {
	if cookie, err := r.Cookie(utils.SessionCookieName); err == nil && cookie.Value != "" {
		return SessionKeyPrefix + cookie.Value
	}

	if forwarded := r.Header.Get(utils.HeaderXForwardedFor); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return IPKeyPrefix + first
		}
	}

	return IPKeyPrefix + "unknown"
}
