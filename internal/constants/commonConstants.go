package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSession CachePrefix = "console_session:"
)

const (
	SessionCookieName = "sirms_session"
	ThemeCookieName   = "theme_preference"
	NotAvailable      = "N/A"
	RunwayLabelPrefix = "RWY "
)
