package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/browser"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

const (
	// defaultFallbackLinksPerCategory caps how many links are visited per
	// page category during the comprehensive fallback search
	defaultFallbackLinksPerCategory = 2
)

// fallbackCategories are anchor-text fragments for page categories likely to
// display the registered legal name. Scanned in order during the fallback
// search, first match across all categories wins.
var fallbackCategories = []string{"contact", "about", "info", "us", "company"}

// Options configures the audit engine
type Options struct {
	fallbackLinksPerCategory int
}

// Option is a functional option for configuring the audit engine
type Option func(*Options)

// WithFallbackLinksPerCategory sets how many links are visited per fallback category
func WithFallbackLinksPerCategory(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.fallbackLinksPerCategory = n
		}
	}
}

// Engine runs the four-pass policy audit for one merchant at a time over a
// single browsing session. Passes run strictly in order because each depends
// on state the previous one populated; the engine performs no internal
// concurrency or rate limiting.
type Engine struct {
	session browser.Session
	options *Options
}

// New creates an audit engine over the given browsing session
func New(session browser.Session, opts ...Option) *Engine {
	o := &Options{
		fallbackLinksPerCategory: defaultFallbackLinksPerCategory,
	}

	for _, opt := range opts {
		opt(o)
	}

	return &Engine{session: session, options: o}
}

// candidateLink pairs an extracted link with its normalized anchor text
type candidateLink struct {
	text string
	href string
}

// Audit performs the full policy audit for one merchant. Any panic during the
// passes is captured as the result's error string; the result then reflects
// whatever state existed when the failure occurred, and the caller is free to
// continue with the next merchant.
func (e *Engine) Audit(ctx context.Context, profile *merchant.Profile) *Result {
	profile.Resolve()
	res := newResult(profile)

	if strings.TrimSpace(profile.WebsiteURL) == "" {
		res.Err = ErrMissingWebsite.Error()
		e.finalize(res)

		return res
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Sprintf("audit aborted: %v", r)
				log.Error().Str("website", profile.WebsiteURL).Str("panic", fmt.Sprint(r)).Msg("merchant audit aborted")
			}
		}()

		e.runPasses(ctx, res)
	}()

	e.finalize(res)

	return res
}

// runPasses executes the four audit passes in order
func (e *Engine) runPasses(ctx context.Context, res *Result) {
	homepage := res.Profile.WebsiteURL

	if !e.session.Navigate(ctx, homepage) {
		res.Err = ErrHomepageUnreachable.Error()
		return
	}

	links := e.extractCandidates(ctx)
	log.Debug().Str("website", homepage).Int("links", len(links)).Msg("homepage links extracted")

	e.primaryPass(ctx, res, links, homepage)
	e.groupResolutionPass(res)
	e.verifyLegalNamePass(ctx, res)
	e.fallbackPass(ctx, res, links, homepage)
}

// extractCandidates reads the current page's links and normalizes anchors once
func (e *Engine) extractCandidates(ctx context.Context) []candidateLink {
	links, err := e.session.Links(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("link extraction failed")
		return nil
	}

	return lo.Map(links, func(l browser.Link, _ int) candidateLink {
		return candidateLink{
			text: policy.Normalize(l.Text),
			href: l.Href,
		}
	})
}

// primaryPass walks the merchant type's ordered checklist. For each policy it
// follows the first anchor-hinted homepage link that can be fetched, tests
// the page against the policy's content keywords, and moves on: one fetched
// candidate decides a policy within this pass, with no comparison of
// alternatives. Every fetched page is cached for the fallback search.
func (e *Engine) primaryPass(ctx context.Context, res *Result, links []candidateLink, homepage string) {
	for _, kind := range policy.Checklist(res.Profile.Type) {
		out := res.outcome(kind)
		if out.Present {
			continue
		}

		for _, link := range links {
			if !policy.AnchorMatches(link.text, kind) {
				continue
			}

			if !e.session.Navigate(ctx, link.href) {
				// unreachable candidate, try the next hinted link
				continue
			}

			text, err := e.session.BodyText(ctx)
			if err != nil {
				log.Warn().Err(err).Str("url", link.href).Msg("body text extraction failed")
				continue
			}

			normalized := policy.Normalize(text)
			res.visited = append(res.visited, visitedPage{url: link.href, text: normalized, kind: kind})
			res.PagesVisited++

			if policy.PageSatisfies(normalized, kind) {
				res.markFound(kind, link.href, normalized)
				e.tryLegalName(res, normalized, link.href)
				log.Debug().Str("url", link.href).Str("kind", string(kind)).Msg("policy page found")

				e.session.Navigate(ctx, homepage)
			}

			// first fetched candidate decides this policy here; the group
			// resolution and fallback passes may still resolve it later
			break
		}
	}
}

// groupResolutionPass infers policy presence from the cached text of sibling
// pages in the merchant type's resolvable group, without any navigation.
// Repeats until an iteration resolves nothing further; bounded by group size.
func (e *Engine) groupResolutionPass(res *Result) {
	group := policy.ResolvableGroup(res.Profile.Type)

	for progressed := true; progressed; {
		progressed = false

		var sources []*Outcome

		for _, kind := range group {
			if out := res.outcome(kind); out.Present && out.cachedText != "" {
				sources = append(sources, out)
			}
		}

		for _, kind := range group {
			out := res.outcome(kind)
			if out.Present {
				continue
			}

			for _, src := range sources {
				if !policy.PageSatisfies(src.cachedText, kind) {
					continue
				}

				res.markFound(kind, src.SourceURL, src.cachedText)
				e.tryLegalName(res, src.cachedText, src.SourceURL)
				log.Debug().Str("url", src.SourceURL).Str("kind", string(kind)).Str("via", string(src.Kind)).Msg("policy resolved from sibling page")

				progressed = true

				break
			}
		}
	}
}

// verifyLegalNamePass re-fetches the page the legal name was attributed to
// and re-runs the matcher against fresh text. A failed re-match resets the
// presence, guarding against stale cached text and false positives picked up
// from group-resolved pages. A failed navigation skips verification.
func (e *Engine) verifyLegalNamePass(ctx context.Context, res *Result) {
	if res.LegalName != LegalNameFound || res.LegalNameURL == "" {
		return
	}

	if !e.session.Navigate(ctx, res.LegalNameURL) {
		return
	}

	text, err := e.session.BodyText(ctx)
	if err != nil {
		return
	}

	res.PagesVisited++

	if !merchant.ContainsLegalName(text, res.Profile.LegalName) {
		log.Debug().Str("url", res.LegalNameURL).Msg("legal name did not survive re-verification")
		res.LegalName = LegalNameMissing
		res.LegalNameURL = ""
	}
}

// fallbackPass is the comprehensive legal-name search used only when the
// requirement applies and earlier passes found nothing: first the cached
// pages from the primary pass, then a fresh homepage fetch, then up to two
// links per fallback page category. First hit anywhere wins.
func (e *Engine) fallbackPass(ctx context.Context, res *Result, links []candidateLink, homepage string) {
	if !res.Profile.RequiresLegalName() || res.LegalName == LegalNameFound {
		return
	}

	legalName := res.Profile.LegalName

	for _, page := range res.visited {
		if merchant.ContainsLegalName(page.text, legalName) {
			res.LegalName = LegalNameFound
			res.LegalNameURL = page.url

			return
		}
	}

	if e.session.Navigate(ctx, homepage) {
		if text, err := e.session.BodyText(ctx); err == nil {
			res.PagesVisited++

			if merchant.ContainsLegalName(text, legalName) {
				res.LegalName = LegalNameFound
				res.LegalNameURL = homepage

				return
			}
		}
	}

	for _, category := range fallbackCategories {
		matched := 0

		for _, link := range links {
			if !strings.Contains(link.text, category) {
				continue
			}

			matched++
			if matched > e.options.fallbackLinksPerCategory {
				break
			}

			if !e.session.Navigate(ctx, link.href) {
				continue
			}

			text, err := e.session.BodyText(ctx)
			if err != nil {
				continue
			}

			res.PagesVisited++

			if merchant.ContainsLegalName(text, legalName) {
				res.LegalName = LegalNameFound
				res.LegalNameURL = link.href

				return
			}
		}
	}
}

// tryLegalName attempts a legal-name match on freshly classified page text,
// recording the first hit. Later passes re-verify it.
func (e *Engine) tryLegalName(res *Result, normalizedText, sourceURL string) {
	if !res.Profile.RequiresLegalName() || res.LegalName == LegalNameFound {
		return
	}

	if merchant.ContainsLegalName(normalizedText, res.Profile.LegalName) {
		res.LegalName = LegalNameFound
		res.LegalNameURL = sourceURL
	}
}

// finalize freezes the result: relevant policies still absent become MISSING
// items, cached page text is discarded, and the verdict and manual-review
// flag are computed.
func (e *Engine) finalize(res *Result) {
	foundCount := 0
	relevantCount := 0

	for _, kind := range policy.Checklist(res.Profile.Type) {
		out := res.outcome(kind)
		relevantCount++

		if out.Present {
			foundCount++
			continue
		}

		out.Status = StatusMissing
		res.MissingItems = append(res.MissingItems, string(kind))
	}

	for _, out := range res.Outcomes {
		out.cachedText = ""
	}

	res.visited = nil
	res.AllRelevantMissing = foundCount == 0

	legalSatisfied := true
	if res.Profile.RequiresLegalName() && res.LegalName != LegalNameFound {
		res.MissingItems = append(res.MissingItems, legalNameItem)
		legalSatisfied = false
	}

	res.Compliant = foundCount == relevantCount && legalSatisfied
}
