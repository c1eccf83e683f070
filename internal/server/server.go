// Package server assembles the gin engine and runs it.
package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"sisyphus/internal/assets"
	"sisyphus/internal/config"
	"sisyphus/internal/constants"
	"sisyphus/internal/handlers"
	"sisyphus/internal/logging"
	"sisyphus/internal/models"
	"sisyphus/internal/repository"
	"sisyphus/internal/services"
	"sisyphus/internal/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	loginMaxFailures = 5
	loginWindow      = time.Minute
	shutdownTimeout  = 10 * time.Second
)

// Server is the blog's HTTP server.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *gin.Engine
}

// New wires repositories, services and handlers into a gin engine.
func New(cfg *config.Config, logger *zap.Logger, templatesFS, staticFS fs.FS) (*Server, error) {
	renderer, err := views.NewRenderer(templatesFS)
	if err != nil {
		return nil, err
	}
	static, err := assets.Load(staticFS, cfg.Production)
	if err != nil {
		return nil, err
	}
	secret, err := sessionSecret(cfg, logger)
	if err != nil {
		return nil, err
	}

	postRepo := repository.NewPostRepository(cfg.PostsDir)
	commentRepo := repository.NewCommentRepository(cfg.CommentsDir)

	postService := services.NewPostService(postRepo, commentRepo, logger)
	commentService := services.NewCommentService(commentRepo, postRepo, logger)
	authService := services.NewAuthService(cfg.AdminPassword,
		services.NewLoginLimiter(loginMaxFailures, loginWindow), logger)

	site := models.Site{Name: cfg.SiteName, URL: cfg.SiteURL, Description: cfg.SiteDescription}

	r := gin.New()
	r.Use(logging.RequestLogger(logger), gin.Recovery())
	r.HTMLRender = renderer

	// Assets do not need the session.
	r.GET("/static/*filepath", static.Handler())
	r.HEAD("/static/*filepath", static.Handler())

	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.AuthCookieMaxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.AuthCookieName, store))
	r.Use(handlers.SessionMiddleware(site))

	registerRoutes(r, routeHandlers{
		blog:  handlers.NewBlogHandler(postService, commentService, cfg.PageSize),
		admin: handlers.NewAdminHandler(postService),
		auth:  handlers.NewAuthHandler(authService),
		feed:  handlers.NewFeedHandler(postService, site),
	})

	return &Server{cfg: cfg, logger: logger, engine: r}, nil
}

// sessionSecret returns the configured secret or a random one. A random
// secret logs out the admin whenever the process restarts.
func sessionSecret(cfg *config.Config, logger *zap.Logger) ([]byte, error) {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	logger.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	return secret, nil
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", ln.Addr().String()),
			zap.Bool("production", s.cfg.Production), zap.Bool("secureCookies", s.cfg.CookieSecure()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
