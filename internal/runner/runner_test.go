package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/slack"
)

// fakeAuditor returns canned results keyed by website URL
type fakeAuditor struct {
	results map[string]*audit.Result
	audited []string
}

func (f *fakeAuditor) Audit(_ context.Context, profile *merchant.Profile) *audit.Result {
	f.audited = append(f.audited, profile.WebsiteURL)

	profile.Resolve()

	if res, ok := f.results[profile.WebsiteURL]; ok {
		res.Profile = profile
		return res
	}

	return &audit.Result{Profile: profile}
}

// memorySink collects report rows in order
type memorySink struct {
	rows []audit.Report
	err  error
}

func (m *memorySink) Write(report audit.Report) error {
	if m.err != nil {
		return m.err
	}

	m.rows = append(m.rows, report)

	return nil
}

// fakeNotifier records sent messages
type fakeNotifier struct {
	messages []slack.Message
}

func (f *fakeNotifier) Send(_ context.Context, msg slack.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func TestRun_SummaryCounts(t *testing.T) {
	auditor := &fakeAuditor{results: map[string]*audit.Result{
		"https://pass.example.com": {Compliant: true},
		"https://fail.example.com": {MissingItems: []string{"privacy"}},
		"https://dead.example.com": {Err: "homepage unreachable"},
	}}
	sink := &memorySink{}

	r := New(auditor, sink, WithDelay(0))

	summary, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "https://pass.example.com"},
		{WebsiteURL: "https://fail.example.com"},
		{WebsiteURL: "https://dead.example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 3 || summary.Passed != 1 || summary.Failed != 1 || summary.Errored != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	if len(sink.rows) != 3 {
		t.Fatalf("expected 3 report rows, got %d", len(sink.rows))
	}

	if len(auditor.audited) != 3 {
		t.Errorf("expected 3 audits, got %d", len(auditor.audited))
	}
}

func TestRun_SequentialOrder(t *testing.T) {
	auditor := &fakeAuditor{}
	sink := &memorySink{}

	r := New(auditor, sink, WithDelay(0))

	_, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "https://a.example.com"},
		{WebsiteURL: "https://b.example.com"},
		{WebsiteURL: "https://c.example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}

	for i, url := range want {
		if auditor.audited[i] != url {
			t.Errorf("position %d: expected %s, got %s", i, url, auditor.audited[i])
		}
	}
}

func TestRun_WritesRemediationDraft(t *testing.T) {
	dir := t.TempDir()

	auditor := &fakeAuditor{results: map[string]*audit.Result{
		"https://fail.example.com": {MissingItems: []string{"privacy", "terms"}},
	}}
	sink := &memorySink{}

	r := New(auditor, sink, WithDelay(0), WithDraftsDir(dir))

	summary, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "https://fail.example.com", ContactEmail: "owner@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.DraftsWritten != 1 {
		t.Fatalf("expected 1 draft written, got %d", summary.DraftsWritten)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading drafts dir: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 draft file, got %d", len(entries))
	}

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading draft: %v", err)
	}

	if len(content) == 0 {
		t.Error("expected non-empty draft")
	}
}

func TestRun_NoDraftWithoutContactEmail(t *testing.T) {
	dir := t.TempDir()

	auditor := &fakeAuditor{results: map[string]*audit.Result{
		"https://fail.example.com": {MissingItems: []string{"privacy"}},
	}}
	sink := &memorySink{}

	r := New(auditor, sink, WithDelay(0), WithDraftsDir(dir))

	summary, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "https://fail.example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.DraftsWritten != 0 {
		t.Errorf("expected no drafts, got %d", summary.DraftsWritten)
	}
}

func TestRun_NotifiesFailingMerchants(t *testing.T) {
	auditor := &fakeAuditor{results: map[string]*audit.Result{
		"https://pass.example.com": {Compliant: true},
		"https://fail.example.com": {MissingItems: []string{"privacy"}},
	}}
	sink := &memorySink{}
	notifier := &fakeNotifier{}

	r := New(auditor, sink, WithDelay(0), WithNotifier(notifier))

	_, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "https://pass.example.com"},
		{WebsiteURL: "https://fail.example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.messages))
	}
}

func TestRun_SinkFailureAborts(t *testing.T) {
	auditor := &fakeAuditor{}
	sink := &memorySink{err: errors.New("disk full")}

	r := New(auditor, sink, WithDelay(0))

	_, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "https://a.example.com"},
		{WebsiteURL: "https://b.example.com"},
	})
	if err == nil {
		t.Fatal("expected sink failure to abort the run")
	}

	if len(auditor.audited) != 1 {
		t.Errorf("expected run to stop after first merchant, got %d audits", len(auditor.audited))
	}
}

func TestRun_ContextCancelledDuringDelay(t *testing.T) {
	auditor := &fakeAuditor{}
	sink := &memorySink{}

	ctx, cancel := context.WithCancel(context.Background())

	r := New(auditor, sink, WithDelay(time.Minute))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	summary, err := r.Run(ctx, []merchant.Profile{
		{WebsiteURL: "https://a.example.com"},
		{WebsiteURL: "https://b.example.com"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if summary.Total != 1 {
		t.Errorf("expected 1 merchant processed before cancellation, got %d", summary.Total)
	}
}

func TestRun_NormalizesWebsiteURL(t *testing.T) {
	auditor := &fakeAuditor{}
	sink := &memorySink{}

	r := New(auditor, sink, WithDelay(0))

	_, err := r.Run(context.Background(), []merchant.Profile{
		{WebsiteURL: "shop.example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if auditor.audited[0] != "https://shop.example.com" {
		t.Errorf("expected normalized homepage URL, got %s", auditor.audited[0])
	}
}
