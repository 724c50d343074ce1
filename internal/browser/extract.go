package browser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skippedSchemes are href schemes that never lead to an auditable page
var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// ExtractLinks parses anchors from rendered HTML in document order, resolving
// relative hrefs against the page URL. Fragment-only and non-navigable links
// are dropped; anchor text is returned as-is for the caller to normalize.
func ExtractLinks(html, pageURL string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var links []Link

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}

		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		lower := strings.ToLower(href)
		for _, scheme := range skippedSchemes {
			if strings.HasPrefix(lower, scheme) {
				return
			}
		}

		if base != nil {
			if resolved, parseErr := url.Parse(href); parseErr == nil {
				href = base.ResolveReference(resolved).String()
			}
		}

		links = append(links, Link{
			Text: strings.TrimSpace(sel.Text()),
			Href: href,
		})
	})

	return links, nil
}

// ExtractBodyText returns the visible text of the page body with script and
// style content removed. Whitespace is left for the caller to collapse.
func ExtractBodyText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Each(func(_ int, sel *goquery.Selection) {
		sel.Remove()
	})

	return strings.TrimSpace(doc.Find("body").Text()), nil
}
