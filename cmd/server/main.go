package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/promptkit/bundle-pulse/docs"
	"github.com/promptkit/bundle-pulse/internal/adapters"
	"github.com/promptkit/bundle-pulse/internal/cache"
	"github.com/promptkit/bundle-pulse/internal/collection"
	apperrors "github.com/promptkit/bundle-pulse/internal/errors"
	"github.com/promptkit/bundle-pulse/internal/feedback"
	"github.com/promptkit/bundle-pulse/internal/monitoring"
	"github.com/promptkit/bundle-pulse/internal/ratelimit"
	"github.com/promptkit/bundle-pulse/internal/rating"
	"github.com/promptkit/bundle-pulse/internal/store"
	"github.com/promptkit/bundle-pulse/internal/types"
)

const serviceVersion = "1.0.0"

// app bundles the service dependencies handed to the router
type app struct {
	store    *store.Store
	mappings *collection.MappingStore
	adapter  *adapters.GitHubAdapter
	cache    *cache.Cache
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	limiter  *ratelimit.RateLimiter
}

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	githubToken := os.Getenv("GITHUB_TOKEN")
	port := getEnvOrDefault("PORT", "8080")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := getEnvIntOrDefault("REDIS_DB", 0)
	cacheTTL := time.Duration(getEnvIntOrDefault("CACHE_TTL_MINUTES", 15)) * time.Minute
	corsOrigins := getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")

	ratingsStore, err := store.Open(dataDir)
	if err != nil {
		slog.Error("Failed to initialize ratings store", "error", err)
		os.Exit(1)
	}
	defer ratingsStore.Close()

	mappings := collection.NewMappingStore(dataDir)

	githubAdapter := adapters.NewGitHubAdapter(githubToken)
	defer githubAdapter.Close()

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, redisDB)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer redisClient.Close()

	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig())
	defer limiter.Stop()

	appCache := cache.New(cacheTTL)
	defer appCache.Stop()

	a := &app{
		store:    ratingsStore,
		mappings: mappings,
		adapter:  githubAdapter,
		cache:    appCache,
		metrics:  appMetrics,
		logger:   appLogger,
		limiter:  limiter,
	}

	r := newRouter(a, corsOrigins)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port, "version", serviceVersion)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// newRouter wires middleware and routes around the app dependencies
func newRouter(a *app, corsOrigins string) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	if corsOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(corsOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.Use(monitoring.MonitoringMiddleware(a.metrics, a.logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())
	r.Use(a.limiter.IPRateLimitMiddleware())
	r.Use(a.cache.Middleware("/ratings", a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{
			Status:  "healthy",
			Service: "bundle-pulse",
			Version: serviceVersion,
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.metrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"cache":          a.cache.Stats(),
			"rate_limiter":   a.limiter.GetStats(),
			"store_pool":     a.store.PoolStats(),
			"github_breaker": a.adapter.BreakerState().String(),
		})
	})

	r.GET("/ratings/:source/:id", a.handleGetRating)
	r.GET("/top", a.handleTopRated)
	r.POST("/sync/:source/:id", a.limiter.SyncRateLimitMiddleware(), a.handleSync)
	r.GET("/collections/:name/score", a.handleCollectionScore)

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// handleGetRating returns the stored rating snapshot for a resource
func (a *app) handleGetRating(c *gin.Context) {
	source := c.Param("source")
	resourceID := c.Param("id")

	record, err := a.store.Get(c.Request.Context(), source, resourceID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, apperrors.NewNotFoundError("no rating found for "+source+"/"+resourceID))
		return
	}
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to load rating", err))
		return
	}

	c.JSON(http.StatusOK, record)
}

// handleTopRated lists resources ordered by Wilson score
func (a *app) handleTopRated(c *gin.Context) {
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	records, err := a.store.TopRated(c.Request.Context(), limit)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to load top rated resources", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": records,
		"count":     len(records),
	})
}

// handleSync fetches a discussion's reactions and comments, recomputes
// the rating, and persists the snapshot.
func (a *app) handleSync(c *gin.Context) {
	start := time.Now()

	source := c.Param("source")
	if source != "github" {
		respondError(c, apperrors.NewValidationError("unsupported source: "+source))
		return
	}
	resourceID := c.Param("id")

	var req types.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("invalid sync request: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	a.metrics.IncrementGitHubCalls()
	tally, err := a.adapter.FetchDiscussionReactions(ctx, req.Owner, req.Repo, req.Discussion)
	if err != nil {
		a.logger.ExternalAPILogger("GitHub", http.MethodGet, "api.github.com", http.StatusBadGateway, false)
		respondError(c, apperrors.NewExternalAPIError("GitHub", err))
		return
	}

	a.metrics.IncrementGitHubCalls()
	comments, err := a.adapter.FetchDiscussionComments(ctx, req.Owner, req.Repo, req.Discussion)
	if err != nil {
		a.logger.ExternalAPILogger("GitHub", http.MethodGet, "api.github.com", http.StatusBadGateway, false)
		respondError(c, apperrors.NewExternalAPIError("GitHub", err))
		return
	}
	a.logger.ExternalAPILogger("GitHub", http.MethodGet, "api.github.com", http.StatusOK, true)

	metrics := rating.ComputeMetrics(tally.Upvotes, tally.Downvotes)
	stars := feedback.SummarizeComments(comments)
	a.metrics.IncrementRatingsComputed()

	record := store.Record{
		Source:     source,
		ResourceID: resourceID,
		Metrics:    metrics,
		Stars:      stars,
		UpdatedAt:  time.Now().UTC(),
	}

	if err := a.store.Upsert(ctx, record); err != nil {
		respondError(c, apperrors.NewInternalError("failed to persist rating", err))
		return
	}

	// Stored snapshots changed, cached read responses are stale
	a.cache.Clear()

	a.metrics.IncrementSyncRuns()
	a.logger.SyncLogger(source, resourceID, metrics.WilsonScore, metrics.TotalVotes, stars.Count, time.Since(start))

	c.JSON(http.StatusOK, types.SyncResponse{
		Source:     source,
		ResourceID: resourceID,
		Rating:     metrics,
		Stars:      stars,
		SyncedAt:   record.UpdatedAt,
	})
}

// handleCollectionScore aggregates stored ratings for every discussion
// mapped to the named collection.
func (a *app) handleCollectionScore(c *gin.Context) {
	name := c.Param("name")

	discussions, err := a.mappings.Discussions(name)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to load collection mapping", err))
		return
	}
	if len(discussions) == 0 {
		respondError(c, apperrors.NewNotFoundError("unknown collection: "+name))
		return
	}

	var scores []collection.ResourceScore
	totalVotes := 0
	for _, number := range discussions {
		record, err := a.store.Get(c.Request.Context(), "github", strconv.Itoa(number))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			respondError(c, apperrors.NewInternalError("failed to load rating", err))
			return
		}

		scores = append(scores, collection.ResourceScore{
			Score:     record.Metrics.WilsonScore,
			VoteCount: record.Metrics.TotalVotes,
		})
		totalVotes += record.Metrics.TotalVotes
	}

	score := collection.AggregateScores(scores)

	c.JSON(http.StatusOK, types.CollectionScoreResponse{
		Collection:    name,
		Score:         score,
		StarRating:    rating.ScoreToStars(score),
		ResourceCount: len(scores),
		TotalVotes:    totalVotes,
		ComputedAt:    time.Now().UTC(),
	})
}

func respondError(c *gin.Context, appErr *apperrors.AppError) {
	apperrors.LogError(c, appErr)
	c.JSON(appErr.HTTPStatus, appErr)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
