package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stash/internal/blob"
	"github.com/MrSnakeDoc/stash/internal/config"
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/httpserver"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/oembed"
	"github.com/MrSnakeDoc/stash/internal/redis"
	"github.com/MrSnakeDoc/stash/internal/scheduler"
	"github.com/MrSnakeDoc/stash/internal/sources/proxies"
	"github.com/MrSnakeDoc/stash/internal/store"
	"github.com/MrSnakeDoc/stash/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *store.Store
	redisClient *goredis.Client
	snapshotter *scheduler.Snapshotter
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the persistence backend. File is the default; Redis is for
	// deployments that already run one and want the blob off-disk.
	var blobStore blob.Store
	var redisClient *goredis.Client
	switch cfg.StorageBackend {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		blobStore = blob.NewRedisStore(client, cfg.StorageKey)
	default:
		fs, err := blob.NewFileStore(cfg.StorageFile)
		if err != nil {
			loggerClient.Errorf("Failed to prepare storage file %s: %v", cfg.StorageFile, err)
			os.Exit(1)
		}
		blobStore = fs
	}

	st := store.New(store.Options{
		Blob:   blobStore,
		Logger: loggerClient,
	})
	st.Load(context.Background())
	loggerClient.Info("bookmarks loaded", logger.Int("count", st.Count()))

	if cfg.SeedSample && st.Count() == 0 {
		seedSample(st, loggerClient)
	}

	// Proxy endpoint list, overridable via a YAML file.
	proxyList := oembed.DefaultProxies
	if cfg.ProxyFile != "" {
		loaded, err := proxies.NewLoader(cfg.ProxyFile).Load()
		if err != nil {
			loggerClient.Errorf("Failed to load proxies file: %v", err)
			os.Exit(1)
		}
		proxyList = loaded
		loggerClient.Info("proxy list loaded from file",
			logger.String("file", cfg.ProxyFile),
			logger.Int("proxies", len(proxyList)))
	}

	fetcher := oembed.New(proxyList, cfg.FetchTimeout, loggerClient)

	var snapshotter *scheduler.Snapshotter
	var snapshotTrigger chan struct{}
	if cfg.SnapshotDir != "" {
		snapshotTrigger = make(chan struct{}, 1)
		snapshotter = scheduler.NewSnapshotter(
			st,
			cfg.SnapshotDir,
			loggerClient,
			cfg.SnapshotInterval,
			snapshotTrigger,
		)
	} else {
		loggerClient.Info("snapshot directory not configured, snapshots disabled")
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		Store:           st,
		OEmbed:          fetcher,
		Blob:            blobStore,
		AllowedHosts:    cfg.AllowedHosts,
		TrustProxy:      cfg.TrustProxy,
		RateBurst:       cfg.RateBurst,
		RateRefill:      cfg.RateRefillPerMin,
		SnapshotTrigger: snapshotTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       st,
		redisClient: redisClient,
		snapshotter: snapshotter,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Stash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Stash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.snapshotter != nil {
		if err := a.snapshotter.Start(ctx); err != nil {
			return fmt.Errorf("failed to start snapshotter: %w", err)
		}
		a.logger.Info("snapshotter started",
			logger.String("dir", a.cfg.SnapshotDir),
			logger.Duration("interval", a.cfg.SnapshotInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.snapshotter != nil {
		a.snapshotter.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Final save so nothing added since the last write is lost.
	saveCtx, saveCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer saveCancel()
	if err := a.store.Save(saveCtx); err != nil {
		a.logger.Warnf("final save failed: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Stash stopped cleanly")
	return nil
}

// seedSample adds a single starter bookmark so a fresh install has
// something to look at.
func seedSample(st *store.Store, log logger.Logger) {
	_, err := st.Create(context.Background(), store.CreateInput{
		TweetText: "The best way to learn programming is to build projects. " +
			"Start with something simple, then gradually increase complexity. 🚀\n\n" +
			"Here's my advice for beginners:\n" +
			"1. Pick one language\n" +
			"2. Build something daily\n" +
			"3. Read other people's code\n" +
			"4. Don't fear mistakes\n\n" +
			"You've got this! 💪",
		DisplayName: "Tech Tips",
		Username:    "techtips",
		TweetURL:    "https://x.com/techtips/status/1234567890123456789",
		Type:        domain.TypeThread,
	})
	if err != nil {
		log.Warn("sample bookmark created but not persisted", logger.Error(err))
	} else {
		log.Info("sample bookmark seeded")
	}
}
