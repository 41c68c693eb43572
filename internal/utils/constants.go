package utils

// HTTP Header Constants
const (
	// Standard HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderUserAgent     = "User-Agent"
	HeaderCacheControl  = "Cache-Control"
	HeaderRetryAfter    = "Retry-After"

	// Request/Response Tracking Headers
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	// Client IP Headers (priority order)
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"

	// Security Headers
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderPermissionsPolicy     = "Permissions-Policy"

	// CORS Headers
	HeaderAccessControlAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAccessControlAllowMethods = "Access-Control-Allow-Methods"
	HeaderAccessControlAllowHeaders = "Access-Control-Allow-Headers"

	// Authorization Headers
	HeaderAuthorization = "Authorization"
)

// Content Type Constants
const (
	ContentTypeJSON     = "application/json"
	ContentTypeJSONUTF8 = "application/json; charset=utf-8"
)

// Security Header Values
const (
	XContentTypeOptionsNoSniff = "nosniff"
	XFrameOptionsDeny          = "DENY"
	ReferrerPolicyStrict       = "strict-origin-when-cross-origin"
	PermissionsPolicyLocked    = "camera=(), microphone=(), geolocation=()"
	ContentSecurityPolicyValue = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; connect-src 'self'; img-src 'self' data:; frame-ancestors 'none'"
)

// Session Cookie Constants
const (
	SessionCookieName   = "session_id"
	SessionCookieMaxAge = 24 * 60 * 60 // 24 hours in seconds
)

// Service Values
const (
	ServiceName = "Fraud-Screening-Pipeline/1.0"
)

// CORS Values
const (
	CORSAllowOriginAll  = "*"
	CORSAllowMethodsAll = "POST, GET, OPTIONS"
	CORSAllowHeadersStd = "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization"
)
