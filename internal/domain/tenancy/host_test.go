package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier("glambooking.co.uk", true)

	tests := []struct {
		name  string
		host  string
		kind  HostKind
		label string
	}{
		{"primary domain", "glambooking.co.uk", HostPrimary, ""},
		{"primary domain with port", "glambooking.co.uk:443", HostPrimary, ""},
		{"www primary", "www.glambooking.co.uk", HostPrimary, ""},
		{"primary upper case", "GlamBooking.CO.UK", HostPrimary, ""},
		{"primary trailing dot", "glambooking.co.uk.", HostPrimary, ""},
		{"bare localhost", "localhost", HostLocalhost, ""},
		{"localhost with port", "localhost:3000", HostLocalhost, ""},
		{"tenant subdomain", "foo.glambooking.co.uk", HostSubdomain, "foo"},
		{"tenant subdomain with port", "foo.glambooking.co.uk:8080", HostSubdomain, "foo"},
		{"tenant subdomain upper case", "FOO.GlamBooking.co.uk", HostSubdomain, "foo"},
		{"localhost subdomain", "foo.localhost:3000", HostSubdomain, "foo"},
		{"hyphenated label", "nail-bar.glambooking.co.uk", HostSubdomain, "nail-bar"},
		{"www localhost", "www.localhost:3000", HostInvalid, ""},
		{"localhost label under primary", "localhost.glambooking.co.uk", HostInvalid, ""},
		{"nested subdomain", "a.b.glambooking.co.uk", HostInvalid, ""},
		{"label with underscore", "foo_bar.glambooking.co.uk", HostInvalid, ""},
		{"custom domain", "salon.example.com", HostCustomDomain, ""},
		{"custom domain with port", "Salon.Example.com:8443", HostCustomDomain, ""},
		{"apex custom domain", "example.com", HostCustomDomain, ""},
		{"suffix lookalike", "evilglambooking.co.uk", HostCustomDomain, ""},
		{"ipv4", "127.0.0.1:8080", HostInvalid, ""},
		{"ipv6 bracketed with port", "[::1]:8080", HostInvalid, ""},
		{"ipv6 bracketed", "[2001:db8::1]", HostInvalid, ""},
		{"empty", "", HostInvalid, ""},
		{"whitespace", "   ", HostInvalid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := c.Classify(tt.host)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.label, info.Label)
		})
	}
}

func TestClassifier_LocalhostSubdomainsDisabled(t *testing.T) {
	c := NewClassifier("glambooking.co.uk", false)

	info := c.Classify("foo.localhost:3000")
	assert.Equal(t, HostInvalid, info.Kind)
	assert.False(t, info.IsTenantCandidate())

	assert.Equal(t, HostLocalhost, c.Classify("localhost:3000").Kind)
}

func TestClassifier_SubdomainPropertyOverLabels(t *testing.T) {
	c := NewClassifier("glambooking.co.uk", true)

	for _, label := range []string{"a", "foo", "bar", "salon1", "x-y-z", "0day"} {
		info := c.Classify(label + ".glambooking.co.uk")
		assert.Equal(t, HostSubdomain, info.Kind, label)
		assert.True(t, info.IsTenantCandidate())
	}
	for _, label := range []string{"www", "localhost"} {
		assert.NotEqual(t, HostSubdomain, c.Classify(label+".glambooking.co.uk").Kind, label)
	}
}

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, "foo.example.com", NormalizeHost(" Foo.Example.com.:80 "))
	assert.Equal(t, "::1", NormalizeHost("[::1]"))
	assert.Equal(t, "::1", NormalizeHost("[::1]:3000"))
	assert.Equal(t, "", NormalizeHost(""))
}

func TestIsValidSubdomainLabel(t *testing.T) {
	assert.True(t, IsValidSubdomainLabel("foo"))
	assert.False(t, IsValidSubdomainLabel("www"))
	assert.False(t, IsValidSubdomainLabel("-foo"))
	assert.False(t, IsValidSubdomainLabel("foo.bar"))
	assert.False(t, IsValidSubdomainLabel(""))
}

func TestClassifier_IsValidCustomDomain(t *testing.T) {
	tests := []struct {
		name           string
		domain         string
		allowLocalhost bool
		want           bool
	}{
		{name: "external domain", domain: "salon.example.com", want: true},
		{name: "external apex", domain: "foosalon.com", want: true},
		{name: "not normalized", domain: "Salon.example.com", want: false},
		{name: "single label", domain: "salon", want: false},
		{name: "ip address", domain: "10.0.0.1", want: false},
		{name: "bad label", domain: "bad_domain.com", want: false},
		{name: "primary domain", domain: "glambooking.co.uk", want: false},
		{name: "www primary", domain: "www.glambooking.co.uk", want: false},
		{name: "tenant subdomain", domain: "bar.glambooking.co.uk", want: false},
		{name: "nested under primary", domain: "a.bar.glambooking.co.uk", want: false},
		{name: "localhost", domain: "localhost", want: false},
		{name: "localhost subdomain", domain: "bar.localhost", want: false},
		{name: "localhost subdomain allowed", domain: "bar.localhost", allowLocalhost: true, want: false},
		{name: "lookalike suffix", domain: "notglambooking.co.uk", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier("glambooking.co.uk", tt.allowLocalhost)
			assert.Equal(t, tt.want, c.IsValidCustomDomain(tt.domain))
		})
	}
}

func TestClassifier_SubdomainHosts(t *testing.T) {
	assert.Equal(t, []string{"foo.glambooking.co.uk"},
		NewClassifier("glambooking.co.uk", false).SubdomainHosts("foo"))
	assert.Equal(t, []string{"foo.glambooking.co.uk", "foo.localhost"},
		NewClassifier("glambooking.co.uk", true).SubdomainHosts("foo"))
	assert.Empty(t, NewClassifier("glambooking.co.uk", true).SubdomainHosts(""))
}
