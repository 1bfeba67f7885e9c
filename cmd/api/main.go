package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/khudyi/premium-steli/internal/auth"
	"github.com/khudyi/premium-steli/internal/cache"
	"github.com/khudyi/premium-steli/internal/config"
	"github.com/khudyi/premium-steli/internal/db"
	"github.com/khudyi/premium-steli/internal/handlers"
	"github.com/khudyi/premium-steli/internal/middleware"
	"github.com/khudyi/premium-steli/internal/notifications"
	"github.com/khudyi/premium-steli/internal/pricing"
	"github.com/khudyi/premium-steli/internal/projects"
	"github.com/khudyi/premium-steli/internal/submissions"
	"github.com/khudyi/premium-steli/internal/uploads"
	"github.com/khudyi/premium-steli/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "premium-steli",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.NotifyEmail, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	val := validation.New()

	projectsRepo := projects.NewRepository(cols.Projects)
	undoTracker := projects.NewUndoTracker(time.Duration(cfg.UndoTTLSeconds) * time.Second)
	projectsService := projects.NewService(projectsRepo, undoTracker, cfg.Timezone)
	projectsHandler := projects.NewHandler(projectsService, val, logger, cacheStore,
		time.Duration(cfg.CacheTTLSeconds)*time.Second, cfg.GalleryPageSize)

	var notifier submissions.Notifier
	if mailer != nil {
		notifier = mailer
	}
	submissionsRepo := submissions.NewRepository(cols.Submissions)
	submissionsService := submissions.NewService(submissionsRepo, cfg.Timezone, notifier)
	submissionsHandler := submissions.NewHandler(submissionsService, val, logger)

	uploadStore, err := uploads.NewStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Error("upload dir init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	uploadsHandler := uploads.NewHandler(uploadStore, logger)

	pricingHandler := pricing.NewHandler(val, logger)

	server := &handlers.Server{
		Cfg:         cfg,
		Cols:        cols,
		Val:         val,
		Log:         logger,
		JWT:         jwtManager,
		Projects:    projectsService,
		Submissions: submissionsService,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/projects", projectsHandler.PublicList)
		api.With(contactLimiter.Middleware).Post("/contact", submissionsHandler.Create)
		api.Post("/estimate", pricingHandler.Estimate)
		api.Get("/tariffs", pricingHandler.Tariffs)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/register", server.AdminRegister)
			admin.Post("/login", server.AdminLogin)
			admin.Post("/refresh", server.AdminRefresh)
			admin.Post("/logout", server.AdminLogout)

			// Important (chi): middlewares must be attached before defining routes,
			// so the protected routes live in a sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(jwtManager))

				protected.Get("/projects", projectsHandler.AdminBrowse)
				protected.Post("/projects", projectsHandler.AdminCreate)
				protected.Put("/projects/{id}", projectsHandler.AdminUpdate)
				protected.Delete("/projects/{id}", projectsHandler.AdminDelete)
				protected.Post("/projects/restore", projectsHandler.AdminRestore)
				protected.Get("/projects/undo", projectsHandler.AdminUndoState)
				protected.Delete("/projects/undo", projectsHandler.AdminDismissUndo)

				protected.Post("/uploads", uploadsHandler.Upload)

				protected.Get("/submissions", submissionsHandler.AdminList)
				protected.Delete("/submissions/{id}", submissionsHandler.AdminDelete)

				protected.Get("/dashboard", server.AdminDashboard)
				protected.Patch("/password", server.AdminChangePassword)
			})
		})
	})

	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", uploadsFS.ServeHTTP)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
