// Package bootstrap wires the pipeline's object graph for the CLI commands
// and the worker: config, logger, database handles, redis, repositories, and
// use cases.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appgrades "spyglass/internal/application/grades"
	"spyglass/internal/application/metrics/usecases"
	"spyglass/internal/domain/grades"
	"spyglass/internal/domain/learning"
	"spyglass/internal/domain/metrics"
	"spyglass/internal/domain/tenant"
	"spyglass/internal/infrastructure/cache"
	"spyglass/internal/infrastructure/config"
	"spyglass/internal/infrastructure/database"
	"spyglass/internal/infrastructure/grading"
	"spyglass/internal/infrastructure/repository"
	"spyglass/internal/shared/biztime"
	"spyglass/internal/shared/logger"
)

// Runtime holds the wired pipeline components shared by the CLI commands and
// the worker.
type Runtime struct {
	Config   *config.Config
	Logger   logger.Interface
	Tenants  tenant.Repository
	Resolver *tenant.Resolver

	ActivityRepo    learning.ActivityRepository
	EnrollmentRepo  learning.EnrollmentRepository
	CertificateRepo learning.CertificateRepository
	ProfileRepo     learning.UserProfileRepository

	DailyRepo   metrics.DailyMetricRepository
	MonthlyRepo metrics.MonthlyMetricRepository
	DataRepo    metrics.EnrollmentDataRepository

	Collector *appgrades.Collector

	CourseDaily        *usecases.ComputeCourseDailyMetricUseCase
	SiteDaily          *usecases.ComputeSiteDailyMetricUseCase
	FillMonth          *usecases.FillMonthlyMetricUseCase
	BackfillMonthly    *usecases.BackfillMonthlyMetricsUseCase
	BackfillEnrollment *usecases.BackfillEnrollmentDataUseCase
	BackfillProgress   *usecases.BackfillLearnerProgressUseCase
	ActivityCutover    *usecases.BackfillActivityCutoverUseCase
	Sweeper            *usecases.MetricsSweeper

	redisClient *redis.Client
}

// Setup loads configuration and builds the full object graph. The caller
// owns shutdown: defer rt.Close() after a successful Setup.
func Setup(env string, withRedis bool) (*Runtime, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.App.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	primary := database.Get()
	replica := database.GetReplica()

	var redisClient *redis.Client
	var courseKeyCache tenant.CourseKeyCache
	if withRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warnw("redis unavailable, course key caching disabled", "error", err)
			redisClient.Close()
			redisClient = nil
		} else {
			ttl := time.Duration(cfg.Pipeline.CourseKeyCacheTTLMinutes) * time.Minute
			courseKeyCache = cache.NewRedisCourseKeyCache(redisClient, ttl, log)
		}
	}

	rt, err := build(cfg, log, primary, replica, courseKeyCache)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		database.Close()
		return nil, err
	}
	rt.redisClient = redisClient
	return rt, nil
}

func build(
	cfg *config.Config,
	log logger.Interface,
	primary, replica *gorm.DB,
	courseKeyCache tenant.CourseKeyCache,
) (*Runtime, error) {
	tenantRepo := repository.NewTenantRepository(primary, replica, log)
	orgRepo := repository.NewOrganizationRepository(primary, replica, log)
	membershipRepo := repository.NewMembershipRepository(primary, replica, log)

	resolver, err := tenant.NewResolver(
		cfg.App.DeploymentMode,
		cfg.App.DefaultTenantSID,
		tenantRepo,
		orgRepo,
		membershipRepo,
		courseKeyCache,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant resolver: %w", err)
	}

	activityRepo := repository.NewActivityRepository(primary, replica, log)
	enrollmentRepo := repository.NewEnrollmentRepository(primary, replica, log)
	certificateRepo := repository.NewCertificateRepository(primary, replica, log)
	profileRepo := repository.NewUserProfileRepository(primary, replica, log)

	dailyRepo := repository.NewDailyMetricRepository(primary, replica, log)
	monthlyRepo := repository.NewMonthlyMetricRepository(primary, replica, log)
	dataRepo := repository.NewEnrollmentDataRepository(primary, replica, log)

	var adapter grades.Adapter
	switch cfg.Pipeline.GradingSource {
	case "legacy":
		adapter = grading.NewLegacyAdapter(primary, log)
	default:
		adapter = grading.NewSubsectionAdapter(primary, log)
	}
	collector := appgrades.NewCollector(adapter, log)

	courseDaily := usecases.NewComputeCourseDailyMetricUseCase(
		resolver, activityRepo, enrollmentRepo, certificateRepo, collector, dailyRepo, log)
	siteDaily := usecases.NewComputeSiteDailyMetricUseCase(
		resolver, activityRepo, enrollmentRepo, certificateRepo, collector, dailyRepo, log)
	fillMonth := usecases.NewFillMonthlyMetricUseCase(
		resolver, activityRepo, enrollmentRepo, certificateRepo, collector, monthlyRepo, log)

	return &Runtime{
		Config:          cfg,
		Logger:          log,
		Tenants:         tenantRepo,
		Resolver:        resolver,
		ActivityRepo:    activityRepo,
		EnrollmentRepo:  enrollmentRepo,
		CertificateRepo: certificateRepo,
		ProfileRepo:     profileRepo,
		DailyRepo:       dailyRepo,
		MonthlyRepo:     monthlyRepo,
		DataRepo:        dataRepo,
		Collector:       collector,
		CourseDaily:     courseDaily,
		SiteDaily:       siteDaily,
		FillMonth:       fillMonth,
		BackfillMonthly: usecases.NewBackfillMonthlyMetricsUseCase(
			resolver, activityRepo, fillMonth, log),
		BackfillEnrollment: usecases.NewBackfillEnrollmentDataUseCase(
			resolver, enrollmentRepo, collector, dataRepo, monthlyRepo, cfg.Pipeline.PageSize, log),
		BackfillProgress: usecases.NewBackfillLearnerProgressUseCase(
			resolver, enrollmentRepo, collector, monthlyRepo, log),
		ActivityCutover: usecases.NewBackfillActivityCutoverUseCase(
			activityRepo, profileRepo, log),
		Sweeper: usecases.NewMetricsSweeper(
			tenantRepo, resolver, courseDaily, siteDaily, fillMonth, log),
	}, nil
}

// Close releases the runtime's connections.
func (rt *Runtime) Close() {
	if rt.redisClient != nil {
		rt.redisClient.Close()
	}
	database.Close()
	logger.Sync()
}
