package constants

const (
	CookieKeySecretToken = "secret_token"
	HeaderRequestID      = "X-Request-ID"
)

const (
	CtxKeyRequestID = "request_id"
)
