// Package router assembles the gin route table of the booking API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration under a common prefix
type Router struct {
	engine     *gin.Engine
	prefix     string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithPrefix sets the API path prefix
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// NewRouter creates a new Router with the /api prefix
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, prefix: "/api"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.prefix)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup is a prefix with its own middleware and routes
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the API handlers mounted by Mount
type Handlers struct {
	Business   *handler.BusinessHandler
	Team       *handler.TeamHandler
	Catalog    *handler.CatalogHandler
	Public     *handler.PublicHandler
	WhiteLabel *handler.WhiteLabelHandler
	SuperAdmin *handler.SuperAdminHandler
	Webhook    *handler.StripeWebhookHandler
	Health     *handler.HealthHandler
}

// Guards are the access middlewares attached to protected groups
type Guards struct {
	RequireSession    gin.HandlerFunc
	RequireSuperAdmin gin.HandlerFunc
}

// Mount registers the full route table: /health plus everything under /api
func Mount(engine *gin.Engine, h Handlers, g Guards) {
	engine.GET("/health", h.Health.Health)

	business := NewDomainGroup("business", "/business")
	business.GET("/info", g.RequireSession, h.Business.Info).
		GET("/staff", g.RequireSession, h.Business.Staff).
		GET("/subscription", g.RequireSession, h.Business.Subscription).
		PUT("/whitelabel", g.RequireSession, h.Business.UpdateWhiteLabel).
		POST("/whitelabel/logo-upload", g.RequireSession, h.Business.LogoUpload)
	business.Group("team", "/team").
		POST("/invitations", g.RequireSession, h.Team.CreateInvitation).
		GET("/invitation/:id", h.Team.GetInvitation).
		POST("/invitation/:id/cancel", g.RequireSession, h.Team.CancelInvitation).
		POST("/invitation/:id/complete", g.RequireSession, h.Team.CompleteInvitation)

	services := NewDomainGroup("services", "/services").Use(g.RequireSession)
	services.POST("/create", h.Catalog.CreateService).
		POST("/:serviceId/addons", h.Catalog.CreateAddon)

	discover := NewDomainGroup("discover", "/discover")
	discover.GET("/businesses", h.Public.Discover)

	public := NewDomainGroup("public", "/public/business/:businessId")
	public.GET("", h.Public.Business).
		GET("/services", h.Public.Services).
		GET("/services/:serviceId/addons", h.Public.Addons).
		GET("/staff", h.Public.Staff)

	superAdmin := NewDomainGroup("super-admin", "/super-admin").Use(g.RequireSuperAdmin)
	superAdmin.GET("/businesses", h.SuperAdmin.Businesses).
		POST("/businesses/:id/toggle", h.SuperAdmin.ToggleBusiness).
		GET("/clients", h.SuperAdmin.Clients).
		GET("/payouts", h.SuperAdmin.Payouts).
		POST("/payouts/:id/status", h.SuperAdmin.UpdatePayoutStatus).
		GET("/services", h.SuperAdmin.Services).
		GET("/subscriptions", h.SuperAdmin.Subscriptions).
		GET("/support-tickets", h.SuperAdmin.Tickets).
		POST("/support-tickets/:id/status", h.SuperAdmin.UpdateTicketStatus).
		GET("/team-invitations", h.SuperAdmin.Invitations).
		GET("/whitelabels", h.SuperAdmin.WhiteLabels).
		POST("/whitelabels/:id/toggle", h.SuperAdmin.ToggleWhiteLabel)

	whiteLabel := NewDomainGroup("whitelabel", "/whitelabel")
	whiteLabel.GET("/business-id", h.WhiteLabel.BusinessID).
		GET("/theme", h.WhiteLabel.Theme)

	webhooks := NewDomainGroup("webhooks", "/webhooks")
	webhooks.POST("/stripe", h.Webhook.Handle)

	NewRouter(engine).
		Register(business).
		Register(services).
		Register(discover).
		Register(public).
		Register(superAdmin).
		Register(whiteLabel).
		Register(webhooks).
		Setup()
}
