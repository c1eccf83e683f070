// Package config loads blog settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the blog.
type Config struct {
	Addr        string // Listen address (default ":3000")
	PostsDir    string // Directory of <slug>.mdx files (default "content/posts")
	CommentsDir string // Directory of <slug>.json files (default "data/comments")

	AdminPassword        string // Required: the single admin password
	SessionSecret        string // Cookie signing secret; random per process when empty
	Production           bool   // APP_ENV=production
	AllowInsecureCookies bool   // Drop the Secure flag even in production

	SiteName        string
	SiteURL         string
	SiteDescription string
	PageSize        int

	Debug bool
}

// ErrMissingPassword is returned by Validate when no admin password is set.
var ErrMissingPassword = errors.New("ADMIN_PASSWORD is not set")

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the .env file.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	c := &Config{
		Addr:                 envOr("BLOG_ADDR", ""),
		PostsDir:             envOr("BLOG_POSTS_DIR", ""),
		CommentsDir:          envOr("BLOG_COMMENTS_DIR", ""),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		Production:           strings.EqualFold(os.Getenv("APP_ENV"), "production"),
		AllowInsecureCookies: envBool("ALLOW_INSECURE_COOKIES"),
		SiteName:             os.Getenv("BLOG_NAME"),
		SiteURL:              os.Getenv("BLOG_URL"),
		SiteDescription:      os.Getenv("BLOG_DESCRIPTION"),
		Debug:                envBool("BLOG_DEBUG"),
	}
	if c.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.Addr = ":" + port
		}
	}
	if n, err := strconv.Atoi(os.Getenv("BLOG_PAGE_SIZE")); err == nil {
		c.PageSize = n
	}
	c.SetDefaults()
	return c
}

// SetDefaults fills every empty field with its default.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "content/posts"
	}
	if c.CommentsDir == "" {
		c.CommentsDir = "data/comments"
	}
	if c.SiteName == "" {
		c.SiteName = "Sisyphus Blog"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	if c.SiteDescription == "" {
		c.SiteDescription = "Thoughts on software architecture, clean code, and the art of engineering."
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.AdminPassword == "" {
		return ErrMissingPassword
	}
	return nil
}

// CookieSecure reports whether the admin cookie carries the Secure flag.
// Deployments behind a plain HTTP proxy set ALLOW_INSECURE_COOKIES.
func (c *Config) CookieSecure() bool {
	return c.Production && !c.AllowInsecureCookies
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
