package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/p-reiter/usagewatch/internal/models"
	"github.com/p-reiter/usagewatch/internal/usage"
)

type stubFetcher struct {
	mu      sync.Mutex
	pages   [][]usage.Record
	errs    []error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *stubFetcher) FetchUsage(ctx context.Context, keyID string, window models.Window, bucketWidth string) ([]usage.Record, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call < len(f.pages) {
		return f.pages[call], nil
	}
	return nil, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type captureP struct {
	mu      sync.Mutex
	results []Result
}

func (p *captureP) Present(r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, r)
}

func (p *captureP) all() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Result, len(p.results))
	copy(out, p.results)
	return out
}

func testConfig() Config {
	return Config{
		KeyID:                "key_test",
		Tier:                 "standard",
		BucketWidth:          "1h",
		LookbackHours:        6,
		Interval:             time.Hour,
		TokenRateThreshold:   10000,
		RequestRateThreshold: 120,
	}
}

func record(model string, input, output, requests int64) usage.Record {
	return usage.Record{
		"model":              model,
		"input_tokens":       float64(input),
		"output_tokens":      float64(output),
		"num_model_requests": float64(requests),
	}
}

func TestRefreshNowDeliversResult(t *testing.T) {
	fetcher := &stubFetcher{pages: [][]usage.Record{
		{record("gpt-5", 1000, 500, 3)},
	}}
	presenter := &captureP{}
	s := New(testConfig(), fetcher, presenter, nil)

	if !s.RefreshNow(context.Background()) {
		t.Fatal("RefreshNow returned false with no cycle in flight")
	}

	results := presenter.all()
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("unexpected cycle error: %v", r.Err)
	}
	if r.Summary.Totals.Input != 1000 || r.Summary.Totals.Requests != 3 {
		t.Errorf("totals = %+v", r.Summary.Totals)
	}
	if got := r.Window.End - r.Window.Start; got != 6*3600 {
		t.Errorf("window span = %d, want %d", got, 6*3600)
	}
	if r.Alerts != nil {
		t.Errorf("first cycle produced alerts: %v", r.Alerts)
	}
}

func TestSpikeBetweenCycles(t *testing.T) {
	fetcher := &stubFetcher{pages: [][]usage.Record{
		{record("gpt-5", 1000, 0, 1)},
		{record("gpt-5", 21000, 0, 2)},
	}}
	presenter := &captureP{}
	s := New(testConfig(), fetcher, presenter, nil)

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Minute)}
	i := 0
	s.now = func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}

	s.RefreshNow(context.Background())
	s.RefreshNow(context.Background())

	results := presenter.all()
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	alerts := results[1].Alerts
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Kind != models.SpikeTokens || alerts[0].Delta != 20000 {
		t.Errorf("alert = %+v", alerts[0])
	}
}

func TestFailedCycleKeepsBaseline(t *testing.T) {
	upstream := &usage.UpstreamError{StatusCode: 500, Body: "boom"}
	fetcher := &stubFetcher{
		pages: [][]usage.Record{
			{record("gpt-5", 1000, 0, 1)},
			nil,
			{record("gpt-5", 21000, 0, 2)},
		},
		errs: []error{nil, upstream, nil},
	}
	presenter := &captureP{}
	s := New(testConfig(), fetcher, presenter, nil)

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(30 * time.Second), base.Add(time.Minute)}
	i := 0
	s.now = func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}

	s.RefreshNow(context.Background())
	s.RefreshNow(context.Background())
	s.RefreshNow(context.Background())

	results := presenter.all()
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	// The failed cycle is still delivered, carrying the error.
	if !errors.Is(results[1].Err, upstream) {
		t.Errorf("second result Err = %v, want upstream error", results[1].Err)
	}

	// The baseline survives the failure: the third cycle compares against
	// the first, over a full minute.
	alerts := results[2].Alerts
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Delta != 20000 || alerts[0].RatePerMin != 20000 {
		t.Errorf("alert = %+v", alerts[0])
	}
}

func TestRefreshNowSkipsWhileInFlight(t *testing.T) {
	fetcher := &stubFetcher{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	presenter := &captureP{}
	s := New(testConfig(), fetcher, presenter, nil)

	go s.RefreshNow(context.Background())
	<-fetcher.started

	if s.RefreshNow(context.Background()) {
		t.Error("RefreshNow returned true while a cycle was in flight")
	}

	close(fetcher.release)

	deadline := time.After(2 * time.Second)
	for fetcher.callCount() != 1 {
		select {
		case <-deadline:
			t.Fatalf("calls = %d, want 1", fetcher.callCount())
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestRunInitialCycleAndClose(t *testing.T) {
	fetcher := &stubFetcher{pages: [][]usage.Record{
		{record("gpt-5", 100, 0, 1)},
	}}
	presenter := &captureP{}
	s := New(testConfig(), fetcher, presenter, nil)

	s.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for len(presenter.all()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no result delivered from initial cycle")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	s.Close()

	if n := fetcher.callCount(); n != 1 {
		t.Errorf("calls = %d, want 1 (interval never elapsed)", n)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	fetcher := &stubFetcher{}
	presenter := &captureP{}
	s := New(testConfig(), fetcher, presenter, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
