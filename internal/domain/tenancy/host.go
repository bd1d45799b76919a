// Package tenancy classifies inbound request hosts into the shapes the
// platform routes on: the primary domain, local development hosts,
// per-tenant subdomains and tenant-owned custom domains.
package tenancy

import (
	"net"
	"regexp"
	"strings"
)

// HostKind enumerates the host shapes understood by the resolver
type HostKind string

const (
	HostInvalid      HostKind = "invalid"
	HostPrimary      HostKind = "primary"
	HostLocalhost    HostKind = "localhost"
	HostSubdomain    HostKind = "subdomain"
	HostCustomDomain HostKind = "custom_domain"
)

const localhost = "localhost"

// labels that can never identify a tenant subdomain
var reservedLabels = map[string]struct{}{
	"www":       {},
	"localhost": {},
}

var dnsLabelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// HostInfo is the result of classifying a host header
type HostInfo struct {
	Kind HostKind
	// Host is the normalized host without port
	Host string
	// Label is the tenant label for HostSubdomain
	Label string
}

// IsTenantCandidate reports whether the host may map to a tenant
func (h HostInfo) IsTenantCandidate() bool {
	return h.Kind == HostSubdomain || h.Kind == HostCustomDomain
}

// Classifier classifies hosts against a primary platform domain
type Classifier struct {
	primary        string
	allowLocalhost bool
}

// NewClassifier creates a classifier for the given primary domain.
// When allowLocalhost is set, <label>.localhost[:port] is treated as a tenant subdomain.
func NewClassifier(primaryDomain string, allowLocalhost bool) *Classifier {
	return &Classifier{
		primary:        NormalizeHost(primaryDomain),
		allowLocalhost: allowLocalhost,
	}
}

// SubdomainHosts returns every hostname that classifies to the given tenant label
func (c *Classifier) SubdomainHosts(label string) []string {
	if label == "" {
		return nil
	}
	hosts := make([]string, 0, 2)
	if c.primary != "" {
		hosts = append(hosts, label+"."+c.primary)
	}
	if c.allowLocalhost {
		hosts = append(hosts, label+"."+localhost)
	}
	return hosts
}

// IsValidCustomDomain reports whether domain can be registered as a tenant custom domain.
// Hosts under the primary domain or localhost are routed by label and never qualify.
func (c *Classifier) IsValidCustomDomain(domain string) bool {
	host := NormalizeHost(domain)
	if host != domain || !strings.Contains(host, ".") {
		return false
	}
	return c.Classify(host).Kind == HostCustomDomain
}

// Classify maps a raw Host header value to a HostInfo
func (c *Classifier) Classify(rawHost string) HostInfo {
	host := NormalizeHost(rawHost)
	if host == "" {
		return HostInfo{Kind: HostInvalid}
	}
	if net.ParseIP(host) != nil {
		return HostInfo{Kind: HostInvalid, Host: host}
	}

	switch {
	case c.primary != "" && (host == c.primary || host == "www."+c.primary):
		return HostInfo{Kind: HostPrimary, Host: host}
	case host == localhost:
		return HostInfo{Kind: HostLocalhost, Host: host}
	}

	if c.primary != "" {
		if prefix, ok := strings.CutSuffix(host, "."+c.primary); ok {
			return subdomainOrInvalid(host, prefix)
		}
	}
	if prefix, ok := strings.CutSuffix(host, "."+localhost); ok {
		if !c.allowLocalhost {
			return HostInfo{Kind: HostInvalid, Host: host}
		}
		return subdomainOrInvalid(host, prefix)
	}

	if !isValidDomain(host) {
		return HostInfo{Kind: HostInvalid, Host: host}
	}
	return HostInfo{Kind: HostCustomDomain, Host: host}
}

func subdomainOrInvalid(host, label string) HostInfo {
	if !IsValidSubdomainLabel(label) {
		return HostInfo{Kind: HostInvalid, Host: host}
	}
	return HostInfo{Kind: HostSubdomain, Host: host, Label: label}
}

// NormalizeHost lower-cases a host, removes a trailing dot and strips any port.
// Bracketed IPv6 literals are returned without brackets.
func NormalizeHost(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	} else if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}
	return strings.TrimSuffix(host, ".")
}

// IsValidSubdomainLabel reports whether label can be registered as a tenant subdomain
func IsValidSubdomainLabel(label string) bool {
	if _, reserved := reservedLabels[label]; reserved {
		return false
	}
	return dnsLabelRegex.MatchString(label)
}

func isValidDomain(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if !dnsLabelRegex.MatchString(label) {
			return false
		}
	}
	return true
}
