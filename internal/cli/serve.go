package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/server"
)

type serveOpts struct {
	addr        string
	redisURL    string
	redisPrefix string
	maxBody     int64
	timeout     time.Duration
	noCache     bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:        ":8080",
		redisPrefix: appName + ":",
		maxBody:     server.DefaultMaxBodyBytes,
		timeout:     server.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  GET  /healthz
  GET  /v1/formats
  POST /v1/layout
  POST /v1/render/{format}

Layouts and artifacts are cached in the local cache directory, or in Redis
with --redis so several instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", opts.redisPrefix, "prefix for Redis keys")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum request body in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cc, keyer, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithMaxBodyBytes(opts.maxBody),
		server.WithTimeout(opts.timeout),
	)
	printInfo("Serving on %s", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache picks Redis when configured, the file cache otherwise. Keys
// are scoped to the build version so instances of different versions can
// share a Redis database.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version)
	if opts.redisURL == "" || opts.noCache {
		cc, err := c.newCache(opts.noCache)
		return cc, keyer, err
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		URL:    opts.redisURL,
		Prefix: opts.redisPrefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	c.Logger.Info("using redis cache", "prefix", opts.redisPrefix)
	return rc, keyer, nil
}
