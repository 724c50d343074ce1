package mailcheck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/domain"
)

const (
	// defaultDNSServer is the DNS resolver used when none is configured
	defaultDNSServer = "8.8.8.8:53"
	// defaultDNSTimeout is the per-query timeout for DNS lookups
	defaultDNSTimeout = 5 * time.Second
)

// Result captures the deliverability check for a merchant contact address
type Result struct {
	// Domain is the mail domain that was checked
	Domain string `json:"domain"`
	// MXHosts lists the mail exchangers for the domain in preference order
	MXHosts []string `json:"mx_hosts,omitempty"`
	// HasMX indicates whether the domain publishes any MX record
	HasMX bool `json:"has_mx"`
	// HasSPF indicates whether the domain publishes an SPF record
	HasSPF bool `json:"has_spf"`
}

// Deliverable reports whether mail sent to the domain has somewhere to go
func (r Result) Deliverable() bool {
	return r.HasMX
}

// Checker performs DNS-based contact-email deliverability checks
type Checker struct {
	client    *dns.Client
	dnsServer string
}

// CheckerOption configures the Checker
type CheckerOption func(*Checker)

// WithDNSServer overrides the DNS server used for lookups
func WithDNSServer(server string) CheckerOption {
	return func(c *Checker) {
		if server != "" {
			c.dnsServer = server
		}
	}
}

// WithDNSTimeout overrides the per-query DNS timeout
func WithDNSTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// NewChecker creates a contact-email deliverability checker
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		client: &dns.Client{
			Timeout: defaultDNSTimeout,
		},
		dnsServer: defaultDNSServer,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check resolves the mail domain of the address and looks up its MX and SPF
// records
func (c *Checker) Check(ctx context.Context, email string) (*Result, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	info, err := domain.Parse(email)
	if err != nil {
		return nil, fmt.Errorf("mail domain for %s: %w", email, err)
	}

	result := &Result{Domain: info.Domain}
	result.MXHosts = c.lookupMX(ctx, info.Domain)
	result.HasMX = len(result.MXHosts) > 0
	result.HasSPF = c.hasSPF(ctx, info.Domain)

	return result, nil
}

// lookupMX returns the MX targets for the domain sorted by preference
func (c *Checker) lookupMX(ctx context.Context, mailDomain string) []string {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(mailDomain), dns.TypeMX)
	msg.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.dnsServer)
	if err != nil || resp == nil {
		return nil
	}

	type mx struct {
		host string
		pref uint16
	}

	var records []mx

	for _, rr := range resp.Answer {
		m, ok := rr.(*dns.MX)
		if !ok {
			continue
		}

		host := strings.TrimSuffix(m.Mx, ".")
		if host == "" {
			continue
		}

		records = append(records, mx{host: host, pref: m.Preference})
	}

	for i := range records {
		for j := i + 1; j < len(records); j++ {
			if records[j].pref < records[i].pref {
				records[i], records[j] = records[j], records[i]
			}
		}
	}

	hosts := make([]string, 0, len(records))
	for _, r := range records {
		hosts = append(hosts, r.host)
	}

	return hosts
}

// hasSPF reports whether the domain publishes a v=spf1 TXT record
func (c *Checker) hasSPF(ctx context.Context, mailDomain string) bool {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(mailDomain), dns.TypeTXT)
	msg.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.dnsServer)
	if err != nil || resp == nil {
		return false
	}

	for _, rr := range resp.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}

		record := strings.Join(txt.Txt, "")
		if strings.HasPrefix(strings.ToLower(record), "v=spf1") {
			return true
		}
	}

	return false
}
