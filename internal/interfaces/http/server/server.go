// Package server wires repositories, application services, middleware and
// handlers into a gin engine.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/application/access"
	"github.com/glambooking/backend/internal/application/admin"
	appbilling "github.com/glambooking/backend/internal/application/billing"
	appbusiness "github.com/glambooking/backend/internal/application/business"
	appcatalog "github.com/glambooking/backend/internal/application/catalog"
	appteam "github.com/glambooking/backend/internal/application/team"
	apptenancy "github.com/glambooking/backend/internal/application/tenancy"
	"github.com/glambooking/backend/internal/domain/tenancy"
	"github.com/glambooking/backend/internal/infrastructure/cache"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/glambooking/backend/internal/infrastructure/logger"
	"github.com/glambooking/backend/internal/infrastructure/persistence"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
	"github.com/glambooking/backend/internal/interfaces/http/handler"
	"github.com/glambooking/backend/internal/interfaces/http/middleware"
	"github.com/glambooking/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/glambooking/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Version is reported by the health endpoint
var Version = "dev"

// Deps are the infrastructure pieces the server is built from.
// Uploader is optional; nil disables logo uploads. Meter is optional; nil
// disables request metrics.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Pinger   handler.Pinger
	Cache    cache.Store
	Tokens   middleware.TokenValidator
	Webhooks appbilling.EventParser
	Uploader appbusiness.Uploader
	Meter    *telemetry.MeterProvider
	Logger   *zap.Logger
}

// Server is the assembled HTTP application
type Server struct {
	Engine   *gin.Engine
	Resolver *apptenancy.Resolver
	limiter  *middleware.RateLimiter
}

// New builds the engine and its full dependency graph
func New(d Deps) *Server {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	users := persistence.NewGormUserRepository(d.DB)
	businesses := persistence.NewGormBusinessRepository(d.DB)
	whiteLabels := persistence.NewGormWhiteLabelRepository(d.DB)
	services := persistence.NewGormServiceRepository(d.DB)
	addons := persistence.NewGormAddonRepository(d.DB)
	staff := persistence.NewGormStaffRepository(d.DB)
	invitations := persistence.NewGormInvitationRepository(d.DB)
	subscriptions := persistence.NewGormSubscriptionRepository(d.DB)
	payouts := persistence.NewGormPayoutRepository(d.DB)
	tickets := persistence.NewGormTicketRepository(d.DB)

	classifier := tenancy.NewClassifier(cfg.Tenancy.PrimaryDomain, cfg.Tenancy.AllowLocalhost)
	resolver := apptenancy.NewResolver(apptenancy.ResolverConfig{
		Classifier:  classifier,
		Repo:        whiteLabels,
		Cache:       d.Cache,
		CacheTTL:    cfg.Tenancy.CacheTTL,
		NegativeTTL: cfg.Tenancy.NegativeTTL,
		Logger:      log,
	})
	guard := access.NewGuard(users, businesses, invitations, cfg.SuperAdmin, log.Named("guard"))
	gate := appbilling.NewGate(subscriptions, log.Named("gate"))

	businessSvc := appbusiness.NewService(appbusiness.Deps{
		Businesses:  businesses,
		WhiteLabels: whiteLabels,
		Guard:       guard,
		Gate:        gate,
		Uploader:    d.Uploader,
		Invalidator: resolver,
		Classifier:  classifier,
		Logger:      log.Named("business"),
	})
	catalogSvc := appcatalog.NewService(services, addons, businesses, guard, gate, log.Named("catalog"))
	teamSvc := appteam.NewService(appteam.Deps{
		Invitations:   invitations,
		Staff:         staff,
		Users:         users,
		Businesses:    businesses,
		Guard:         guard,
		Gate:          gate,
		InvitationTTL: cfg.Tenancy.InvitationTTL,
		Logger:        log.Named("team"),
	})
	adminSvc := admin.NewService(admin.Deps{
		Businesses:    businesses,
		WhiteLabels:   whiteLabels,
		Users:         users,
		Services:      services,
		Subscriptions: subscriptions,
		Payouts:       payouts,
		Tickets:       tickets,
		Invitations:   invitations,
		Invalidator:   resolver,
		Classifier:    classifier,
		Logger:        log.Named("admin"),
	})
	webhookSvc := appbilling.NewWebhookService(d.Webhooks, subscriptions, businesses, log.Named("stripe_webhook"))

	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	s := &Server{Engine: engine, Resolver: resolver}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			Enabled:     cfg.Telemetry.Enabled,
			ServiceName: cfg.Telemetry.ServiceName,
		}),
		middleware.SpanEnricher(),
		middleware.HTTPMetrics(d.Meter),
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(middleware.SecurityConfigFor(cfg.App.Env)),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		s.limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(s.limiter))
	}
	engine.Use(
		middleware.TenantHost(resolver),
		middleware.ProfilingLabels(cfg.Telemetry.ProfilingEnabled),
		middleware.Session(d.Tokens, cfg.Session.CookieName, log),
	)

	router.Mount(engine, router.Handlers{
		Business:   handler.NewBusinessHandler(businessSvc, teamSvc, log),
		Team:       handler.NewTeamHandler(teamSvc, log),
		Catalog:    handler.NewCatalogHandler(catalogSvc, log),
		Public:     handler.NewPublicHandler(businessSvc, catalogSvc, teamSvc, log),
		WhiteLabel: handler.NewWhiteLabelHandler(),
		SuperAdmin: handler.NewSuperAdminHandler(adminSvc, log),
		Webhook:    handler.NewStripeWebhookHandler(webhookSvc, log),
		Health:     handler.NewHealthHandler(d.Pinger, Version, log),
	}, router.Guards{
		RequireSession:    middleware.RequireSession(),
		RequireSuperAdmin: middleware.RequireSuperAdmin(guard),
	})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, middleware.RequireSession()),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	return s
}

// Close releases background resources owned by the server
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
