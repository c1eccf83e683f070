package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"sisyphus/internal/config"
	"sisyphus/internal/importer"
	"sisyphus/internal/logging"
	"sisyphus/internal/repository"
	"sisyphus/internal/server"
	"sisyphus/internal/services"
	"sisyphus/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// cliOptions holds flag values. Flags only override the environment when
// they were given explicitly.
type cliOptions struct {
	envFile     string
	postsDir    string
	commentsDir string
	addr        string
	production  bool
	unsafe      bool
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:          "sisyphus",
		Short:        "A personal blog served from MDX files",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.StringVar(&opts.postsDir, "posts-dir", "", "directory of <slug>.mdx posts (BLOG_POSTS_DIR)")
	pf.StringVar(&opts.commentsDir, "comments-dir", "", "directory of <slug>.json comment files (BLOG_COMMENTS_DIR)")
	pf.BoolVar(&opts.debug, "debug", false, "debug logging and gin debug mode (BLOG_DEBUG)")

	root.AddCommand(
		newServeCmd(opts),
		newPostsCmd(opts),
		newSlugCmd(),
		newImportCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

func (o *cliOptions) config(cmd *cobra.Command) *config.Config {
	cfg := config.Load(o.envFile)
	flags := cmd.Flags()
	if flags.Changed("posts-dir") {
		cfg.PostsDir = o.postsDir
	}
	if flags.Changed("comments-dir") {
		cfg.CommentsDir = o.commentsDir
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("addr") {
		cfg.Addr = o.addr
	}
	if flags.Changed("production") {
		cfg.Production = o.production
	}
	if flags.Changed("unsafe") {
		cfg.AllowInsecureCookies = o.unsafe
	}
	return cfg
}

func (o *cliOptions) postService(cfg *config.Config, logger *zap.Logger) *services.PostService {
	return services.NewPostService(
		repository.NewPostRepository(cfg.PostsDir),
		repository.NewCommentRepository(cfg.CommentsDir),
		logger,
	)
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}

			templates, static, err := loadAssets()
			if err != nil {
				return err
			}
			logger.Info("assets loaded", zap.String("mode", assetMode))

			srv, err := server.New(cfg, logger, templates, static)
			if err != nil {
				logger.Error("failed to build server", zap.Error(err))
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.Run(ctx); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "listen address (BLOG_ADDR or PORT, default :3000)")
	f.BoolVar(&opts.production, "production", false, "production mode: Secure cookies, minified assets (APP_ENV=production)")
	f.BoolVar(&opts.unsafe, "unsafe", false, "allow insecure cookies in production (ALLOW_INSECURE_COOKIES)")
	return cmd
}

func newPostsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config(cmd)
			posts, err := repository.NewPostRepository(cfg.PostsDir).FindAll()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tDATE\tCATEGORY\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Date, p.Category, p.Title)
			}
			return w.Flush()
		},
	}
}

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>",
		Short: "Print the slug a title would get",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := utils.Slugify(strings.Join(args, " "))
			if s == "" {
				return services.ErrSlugRequired
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import Markdown posts with front matter from another site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config(cmd)
			logger, err := logging.New(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			res, err := importer.New(opts.postService(cfg, logger), logger).ImportDir(filepath.Clean(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts into %s, skipped %d\n",
				len(res.Imported), cfg.PostsDir, len(res.Skipped))
			return nil
		},
	}
}

func newSeedCmd(opts *cliOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write sample posts for trying the blog out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config(cmd)
			logger, err := logging.New(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			slugs, err := importer.Seed(opts.postService(cfg, logger), count, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d sample posts to %s\n", len(slugs), cfg.PostsDir)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 20, "number of posts to write")
	return cmd
}
