package middleware

import (
	"net/http"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// SecurityHeadersMiddleware sets the standard hardening headers on every
// response. The service serves only JSON and the swagger UI, so a locked-down
// policy set is safe across the board.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set(utils.HeaderXContentTypeOptions, utils.XContentTypeOptionsNoSniff)
		headers.Set(utils.HeaderXFrameOptions, utils.XFrameOptionsDeny)
		headers.Set(utils.HeaderReferrerPolicy, utils.ReferrerPolicyStrict)
		headers.Set(utils.HeaderPermissionsPolicy, utils.PermissionsPolicyLocked)
		headers.Set(utils.HeaderContentSecurityPolicy, utils.ContentSecurityPolicyValue)

		next.ServeHTTP(w, r)
	})
}
