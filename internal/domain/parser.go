package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains parsed domain information for a merchant website or
// contact-email address
type Info struct {
	// Domain is the full host name
	Domain string `json:"domain"`
	// Subdomain is the subdomain part, if present
	Subdomain string `json:"subdomain,omitempty"`
	// TLD is the effective top-level domain
	TLD string `json:"tld"`
	// SLD is the second-level domain
	SLD string `json:"sld"`
}

// Parse extracts domain information from an email address, URL, or bare
// domain string. Email input uses the part after the @, URL input uses the
// host, ports are stripped
func Parse(input string) (*Info, error) {
	if strings.Contains(input, "@") {
		parts := strings.Split(input, "@")
		if len(parts) != 2 {
			return nil, ErrInvalidEmailFormat
		}

		input = parts[1]
	}

	input = strings.ToLower(strings.TrimSpace(input))

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURLFormat, err)
		}

		input = u.Host
	}

	if idx := strings.LastIndex(input, ":"); idx != -1 {
		input = input[:idx]
	}

	if input == "" || !strings.Contains(input, ".") {
		return nil, ErrInvalidDomainFormat
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, _ := publicsuffix.PublicSuffix(input)
	sld := strings.TrimSuffix(etld1, "."+tld)

	subdomain := ""
	if etld1 != input {
		subdomain = strings.TrimSuffix(input, "."+etld1)
	}

	return &Info{
		Domain:    input,
		Subdomain: subdomain,
		TLD:       tld,
		SLD:       sld,
	}, nil
}

// HomepageURL normalizes a merchant website value into a navigable URL,
// defaulting to https when no scheme was supplied
func HomepageURL(website string) (string, error) {
	website = strings.TrimSpace(website)
	if website == "" {
		return "", ErrInvalidURLFormat
	}

	if !strings.Contains(website, "://") {
		website = "https://" + website
	}

	u, err := url.Parse(website)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURLFormat, err)
	}

	if u.Host == "" {
		return "", ErrInvalidURLFormat
	}

	return u.String(), nil
}
