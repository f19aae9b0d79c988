package app

import (
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spendwell/spendwell/internal/cache"
	"github.com/spendwell/spendwell/internal/config"
	"github.com/spendwell/spendwell/internal/event_bus"
	"github.com/spendwell/spendwell/internal/utils"
	"github.com/spendwell/spendwell/pkg/budget"
	"github.com/spendwell/spendwell/pkg/category"
	"github.com/spendwell/spendwell/pkg/google"
	"github.com/spendwell/spendwell/pkg/sharing"
	"github.com/spendwell/spendwell/pkg/stats"
	"github.com/spendwell/spendwell/pkg/syncer"
	"github.com/spendwell/spendwell/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock utils.Clock
	Bus   *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	GoogleAuth *google.GoogleAuth

	BudgetRepo    budget.Repo
	DocumentCache *cache.DocumentCache
	SyncManager   *syncer.Manager

	BudgetService budget.Service
	BudgetHandler *budget.BudgetHandler

	StatsService    stats.StatsService
	CsvWeekRenderer *stats.CsvWeekRendererImpl
	StatsHandler    *stats.StatsHandler

	CategoryHandler *category.Handler

	SharingRepo    sharing.Repo
	SharingService sharing.Service
	SharingHandler *sharing.SharingHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, redisClient *redis.Client, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.Bus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)

	deps.BudgetRepo = budget.NewRepo(db)
	deps.DocumentCache = cache.NewDocumentCache(redisClient)
	debounce := time.Duration(cfg.Sync.DebounceMs) * time.Millisecond
	deps.SyncManager = syncer.NewManager(deps.BudgetRepo, deps.DocumentCache,
		syncer.NewTimerScheduler(), deps.Clock, deps.Bus, debounce)

	deps.BudgetService = budget.NewService(deps.SyncManager)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.SyncManager, deps.Clock)
	deps.CsvWeekRenderer = stats.NewCsvWeekRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvWeekRenderer)

	deps.CategoryHandler = category.NewHandler(deps.BudgetService)

	deps.SharingRepo = sharing.NewRepo(db)
	deps.SharingService = sharing.NewService(deps.BudgetRepo, deps.SharingRepo)
	deps.SharingHandler = sharing.NewSharingHandler(deps.SharingService)

	return deps
}
