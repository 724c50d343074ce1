package rdap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	rdaplib "github.com/openrdap/rdap"
)

const (
	// defaultTimeout is the default timeout for RDAP queries
	defaultTimeout = 30 * time.Second

	// hoursPerDay is the number of hours in a day for age calculation
	hoursPerDay = 24

	// youngDomainDays is the age below which a registration is flagged as
	// recent in audit output
	youngDomainDays = 90
)

// Result captures the RDAP registration record for a merchant domain
type Result struct {
	// Domain is the domain that was queried
	Domain string `json:"domain"`
	// RegistrationDate is when the domain was first registered
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	// ExpirationDate is when the domain registration expires
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	// LastChanged is when the domain record was last modified
	LastChanged *time.Time `json:"last_changed,omitempty"`
	// Registrar is the name of the registrar
	Registrar string `json:"registrar,omitempty"`
	// Status lists the domain status values from RDAP
	Status []string `json:"status,omitempty"`
	// DomainAgeDays is the number of days since registration
	DomainAgeDays int `json:"domain_age_days"`
	// DNSSEC indicates whether DNSSEC is enabled
	DNSSEC bool `json:"dnssec"`
}

// RecentlyRegistered reports whether the domain was registered within the
// young-domain window. A missing registration date is not treated as recent
func (r Result) RecentlyRegistered() bool {
	return r.RegistrationDate != nil && r.DomainAgeDays < youngDomainDays
}

// Client wraps the openrdap library for merchant domain registration lookups
type Client struct {
	rdapClient *rdaplib.Client
	timeout    time.Duration
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for RDAP queries
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.rdapClient.HTTP = httpClient
		}
	}
}

// WithTimeout overrides the timeout for RDAP queries
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates an RDAP client for domain registration lookups
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		rdapClient: &rdaplib.Client{},
		timeout:    defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup performs an RDAP query for the domain and returns its registration
// record
func (c *Client) Lookup(ctx context.Context, domain string) (*Result, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	req := &rdaplib.Request{
		Type:    rdaplib.DomainRequest,
		Query:   domain,
		Timeout: c.timeout,
	}

	req = req.WithContext(ctx)

	resp, err := c.rdapClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RDAP query for %s: %w", domain, err)
	}

	domainObj, ok := resp.Object.(*rdaplib.Domain)
	if !ok || domainObj == nil {
		return nil, fmt.Errorf("RDAP query for %s: %w", domain, ErrUnexpectedResponse)
	}

	result := buildResult(domain, domainObj)

	return &result, nil
}

// buildResult extracts registration data from the RDAP domain response
func buildResult(domain string, d *rdaplib.Domain) Result {
	result := Result{
		Domain: domain,
		Status: d.Status,
	}

	for _, event := range d.Events {
		parsed, err := time.Parse(time.RFC3339, event.Date)
		if err != nil {
			continue
		}

		t := parsed
		switch strings.ToLower(event.Action) {
		case "registration":
			result.RegistrationDate = &t
		case "expiration":
			result.ExpirationDate = &t
		case "last changed":
			result.LastChanged = &t
		}
	}

	if result.RegistrationDate != nil {
		result.DomainAgeDays = int(time.Since(*result.RegistrationDate).Hours() / hoursPerDay)
	}

	if d.SecureDNS != nil && d.SecureDNS.DelegationSigned != nil {
		result.DNSSEC = *d.SecureDNS.DelegationSigned
	}

	for _, entity := range d.Entities {
		for _, role := range entity.Roles {
			if strings.EqualFold(role, "registrar") {
				if entity.VCard != nil {
					result.Registrar = entity.VCard.Name()
				} else if entity.Handle != "" {
					result.Registrar = entity.Handle
				}

				break
			}
		}
	}

	return result
}
