package browser

import (
	"strings"
	"testing"
)

const samplePage = `<html><head><title>Acme Store</title>
<style>body { color: red; }</style>
<script>console.log("tracking");</script>
</head><body>
<nav>
<a href="/privacy">Privacy Policy</a>
<a href="https://example.com/terms">Terms &amp; Conditions</a>
<a href="#top">Back to top</a>
<a href="mailto:hi@example.com">Email us</a>
<a href="javascript:void(0)">Menu</a>
<a href="shipping.html">  Shipping Info  </a>
<a>No href</a>
</nav>
<main>Welcome to Acme Store. Operated by Acme Traders.</main>
</body></html>`

func TestExtractLinks(t *testing.T) {
	links, err := ExtractLinks(samplePage, "https://example.com/shop/")
	if err != nil {
		t.Fatalf("ExtractLinks: unexpected error: %v", err)
	}

	want := []Link{
		{Text: "Privacy Policy", Href: "https://example.com/privacy"},
		{Text: "Terms & Conditions", Href: "https://example.com/terms"},
		{Text: "Shipping Info", Href: "https://example.com/shop/shipping.html"},
	}

	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %+v", len(want), len(links), links)
	}

	for i, w := range want {
		if links[i] != w {
			t.Errorf("link %d: expected %+v, got %+v", i, w, links[i])
		}
	}
}

func TestExtractLinks_UnparseablePageURL(t *testing.T) {
	links, err := ExtractLinks(`<a href="/privacy">Privacy</a>`, "://bad")
	if err != nil {
		t.Fatalf("ExtractLinks: unexpected error: %v", err)
	}

	if len(links) != 1 || links[0].Href != "/privacy" {
		t.Errorf("expected raw href passthrough without a base URL, got %+v", links)
	}
}

func TestExtractBodyText(t *testing.T) {
	text, err := ExtractBodyText(samplePage)
	if err != nil {
		t.Fatalf("ExtractBodyText: unexpected error: %v", err)
	}

	if !strings.Contains(text, "Welcome to Acme Store") {
		t.Errorf("expected body text to contain page copy, got %q", text)
	}

	if strings.Contains(text, "console.log") || strings.Contains(text, "color: red") {
		t.Errorf("expected script and style content to be stripped, got %q", text)
	}
}

func TestExtractBodyText_Empty(t *testing.T) {
	text, err := ExtractBodyText("")
	if err != nil {
		t.Fatalf("ExtractBodyText: unexpected error: %v", err)
	}

	if text != "" {
		t.Errorf("expected empty text for empty document, got %q", text)
	}
}
