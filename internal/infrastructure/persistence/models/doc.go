// Package models contains GORM persistence models that map to database tables.
// They are kept apart from domain entities so the domain layer stays free of ORM
// tags; each model converts to and from its entity with ToDomain / FromDomain.
//
// Files:
// - base.go: BaseModel shared by all tables
// - business.go: businesses and white_label_configs
// - identity.go: users
// - catalog.go: services and service_addons
// - team.go: staff and team_invitations
// - billing.go: subscriptions and payouts
// - support.go: support_tickets
package models
