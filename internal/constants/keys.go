package constants

const (
	// Context Keys
	ContextKeyIsLoggedIn = "IsLoggedIn"
	ContextKeySite       = "site"

	// Session Keys
	SessionKeyAuthenticated = "authenticated"

	// AuthCookieName is the single admin session cookie.
	AuthCookieName = "blog_admin_session"
	// AuthCookieMaxAge is seven days, in seconds.
	AuthCookieMaxAge = 60 * 60 * 24 * 7

	// Comment author labels
	AuthorAdmin   = "Admin"
	AuthorVisitor = "Visitor"

	DefaultCategory       = "General"
	UncategorizedCategory = "Uncategorized"

	// DateLayout is the ISO date stored in post front matter.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is how dates appear on rendered pages.
	DisplayDateLayout = "January 2, 2006"

	PostFileExt    = ".mdx"
	CommentFileExt = ".json"
)
