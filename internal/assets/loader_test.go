package assets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitResult[T any](t *testing.T, p *Pending[T]) Result[T] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := p.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return r
}

func constStrategy(name, value string, delay time.Duration, err error) Strategy[string] {
	return Strategy[string]{
		Name: name,
		Load: func(ctx context.Context, report ReportFunc) (string, error) {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			if err != nil {
				return "", err
			}
			return value, nil
		},
	}
}

func TestLoaderSuccessBeforeTimeout(t *testing.T) {
	l := &Loader[string]{
		Name:       "model",
		Timeout:    time.Second,
		Strategies: []Strategy[string]{constStrategy("direct", "car", 10*time.Millisecond, nil)},
		Fallback:   func() string { return "placeholder" },
	}
	r := waitResult(t, l.Start(context.Background()))

	if r.Source != SourceFetched || r.Asset != "car" || r.Err != nil {
		t.Errorf("got %+v, want fetched car", r)
	}
	if r.Fallback() {
		t.Error("Fallback() should be false for a fetched asset")
	}
}

func TestLoaderTimeoutThenLateSuccess(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})

	l := &Loader[string]{
		Name:    "hdri",
		Timeout: 20 * time.Millisecond,
		Strategies: []Strategy[string]{{
			Name: "slow",
			Load: func(ctx context.Context, report ReportFunc) (string, error) {
				defer close(finished)
				<-release
				// Ignores cancellation to simulate a response that lands late.
				return "late", nil
			},
		}},
		Fallback: func() string { return "gradient" },
	}
	p := l.Start(context.Background())
	r := waitResult(t, p)

	if r.Source != SourceTimeoutFallback || r.Asset != "gradient" {
		t.Fatalf("got %+v, want timeout fallback", r)
	}
	if !errors.Is(r.Err, ErrTimeout) {
		t.Errorf("Err = %v, want ErrTimeout", r.Err)
	}

	close(release)
	<-finished
	time.Sleep(10 * time.Millisecond)

	again, ok := p.Poll()
	if !ok || again.Asset != "gradient" || again.Source != SourceTimeoutFallback {
		t.Errorf("late success replaced fallback: %+v", again)
	}
}

func TestLoaderTimeoutCancelsFetch(t *testing.T) {
	cancelled := make(chan struct{})
	l := &Loader[string]{
		Timeout: 10 * time.Millisecond,
		Strategies: []Strategy[string]{{
			Name: "hang",
			Load: func(ctx context.Context, report ReportFunc) (string, error) {
				<-ctx.Done()
				close(cancelled)
				return "", ctx.Err()
			},
		}},
		Fallback: func() string { return "fb" },
	}
	waitResult(t, l.Start(context.Background()))

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight fetch was not cancelled after timeout")
	}
}

func TestLoaderErrorFallback(t *testing.T) {
	boom := errors.New("404")
	var built atomic.Int32
	l := &Loader[string]{
		Timeout:    time.Second,
		Strategies: []Strategy[string]{constStrategy("direct", "", 0, boom)},
		Fallback: func() string {
			built.Add(1)
			return "placeholder"
		},
	}
	r := waitResult(t, l.Start(context.Background()))

	if r.Source != SourceErrorFallback || r.Asset != "placeholder" {
		t.Fatalf("got %+v, want error fallback", r)
	}
	if !errors.Is(r.Err, ErrExhausted) || !errors.Is(r.Err, boom) {
		t.Errorf("Err = %v, want ErrExhausted wrapping the cause", r.Err)
	}

	// The stopped timer must not resolve a second time.
	time.Sleep(20 * time.Millisecond)
	if n := built.Load(); n != 1 {
		t.Errorf("fallback built %d times, want 1", n)
	}
}

func TestLoaderErrorStopsTimer(t *testing.T) {
	var built atomic.Int32
	l := &Loader[string]{
		Timeout:    30 * time.Millisecond,
		Strategies: []Strategy[string]{constStrategy("direct", "", 0, errors.New("parse"))},
		Fallback: func() string {
			built.Add(1)
			return "fb"
		},
	}
	r := waitResult(t, l.Start(context.Background()))
	time.Sleep(60 * time.Millisecond)

	if r.Source != SourceErrorFallback {
		t.Errorf("Source = %v, want error fallback", r.Source)
	}
	if n := built.Load(); n != 1 {
		t.Errorf("fallback built %d times, want 1", n)
	}
}

func TestLoaderRetriesStrategiesInOrder(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
		at    []time.Time
	)
	record := func(s Strategy[string]) Strategy[string] {
		inner := s.Load
		s.Load = func(ctx context.Context, report ReportFunc) (string, error) {
			mu.Lock()
			order = append(order, s.Name)
			at = append(at, time.Now())
			mu.Unlock()
			return inner(ctx, report)
		}
		return s
	}

	l := &Loader[string]{
		Timeout:    2 * time.Second,
		RetryDelay: 30 * time.Millisecond,
		Strategies: []Strategy[string]{
			record(constStrategy("direct", "", 0, errors.New("network"))),
			record(constStrategy("verify-then-load", "car", 0, nil)),
		},
		Fallback: func() string { return "placeholder" },
	}
	r := waitResult(t, l.Start(context.Background()))

	if r.Source != SourceFetched || r.Asset != "car" {
		t.Fatalf("got %+v, want fetched from second strategy", r)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "direct" || order[1] != "verify-then-load" {
		t.Fatalf("strategy order = %v", order)
	}
	if gap := at[1].Sub(at[0]); gap < 30*time.Millisecond {
		t.Errorf("retry delay not honored: %v", gap)
	}
}

func TestLoaderNoStrategies(t *testing.T) {
	l := &Loader[int]{Timeout: time.Second, Fallback: func() int { return 7 }}
	r := waitResult(t, l.Start(context.Background()))
	if r.Source != SourceErrorFallback || r.Asset != 7 || !errors.Is(r.Err, ErrNoStrategies) {
		t.Errorf("got %+v", r)
	}
}

func TestLoaderParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loader[string]{
		Timeout: 5 * time.Second,
		Strategies: []Strategy[string]{{
			Name: "hang",
			Load: func(ctx context.Context, report ReportFunc) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		}},
		Fallback: func() string { return "fb" },
	}
	p := l.Start(ctx)
	cancel()

	r := waitResult(t, p)
	if r.Source != SourceErrorFallback || !errors.Is(r.Err, context.Canceled) {
		t.Errorf("got %+v, want error fallback from cancellation", r)
	}
}

func TestPollBeforeResolution(t *testing.T) {
	release := make(chan struct{})
	l := &Loader[string]{
		Timeout: 5 * time.Second,
		Strategies: []Strategy[string]{{
			Name: "blocked",
			Load: func(ctx context.Context, report ReportFunc) (string, error) {
				<-release
				return "ok", nil
			},
		}},
	}
	p := l.Start(context.Background())
	if _, ok := p.Poll(); ok {
		t.Error("Poll reported a result before the load finished")
	}
	close(release)
	if r := waitResult(t, p); r.Asset != "ok" {
		t.Errorf("Asset = %q, want ok", r.Asset)
	}
}

func TestPollDuringSlowFallback(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	l := &Loader[string]{
		Name:       "hdri",
		Strategies: []Strategy[string]{constStrategy("direct", "", 0, errors.New("404"))},
		Fallback: func() string {
			close(entered)
			<-release
			return "gradient"
		},
	}
	p := l.Start(context.Background())

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("fallback never started")
	}

	polled := make(chan bool, 1)
	go func() {
		_, ok := p.Poll()
		polled <- ok
	}()
	select {
	case ok := <-polled:
		if ok {
			t.Error("Poll reported a result before the fallback was built")
		}
	case <-time.After(time.Second):
		close(release)
		t.Fatal("Poll blocked while the fallback was being built")
	}

	close(release)
	r := waitResult(t, p)
	if r.Source != SourceErrorFallback || r.Asset != "gradient" {
		t.Errorf("got %+v, want error fallback", r)
	}
}

func TestLoaderProgressMonotonic(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []Progress
	)
	l := &Loader[string]{
		Timeout:    time.Second,
		RetryDelay: time.Millisecond,
		Strategies: []Strategy[string]{
			{
				Name: "partial",
				Load: func(ctx context.Context, report ReportFunc) (string, error) {
					report(Progress{Loaded: 10, Total: 0}) // unknown total
					report(Progress{Loaded: 50, Total: 100})
					return "", errors.New("reset")
				},
			},
			{
				Name: "full",
				Load: func(ctx context.Context, report ReportFunc) (string, error) {
					report(Progress{Loaded: 20, Total: 100}) // restart, goes backwards
					report(Progress{Loaded: 60, Total: 100})
					report(Progress{Loaded: 100, Total: 100})
					return "ok", nil
				},
			},
		},
		OnProgress: func(p Progress) {
			mu.Lock()
			seen = append(seen, p)
			mu.Unlock()
		},
	}
	p := l.Start(context.Background())
	waitResult(t, p)

	mu.Lock()
	defer mu.Unlock()
	want := []int{50, 60, 100}
	if len(seen) != len(want) {
		t.Fatalf("progress reports = %v, want percents %v", seen, want)
	}
	for i, pr := range seen {
		if pr.Percent() != want[i] {
			t.Errorf("report %d = %d%%, want %d%%", i, pr.Percent(), want[i])
		}
	}
	if last, ok := p.Progress(); !ok || last.Percent() != 100 {
		t.Errorf("Progress() = %v, %v", last, ok)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		p    Progress
		want int
	}{
		{Progress{0, 100}, 0},
		{Progress{33, 100}, 33},
		{Progress{150, 100}, 100},
		{Progress{10, 0}, 0},
		{Progress{1, 3}, 33},
	}
	for _, tt := range tests {
		if got := tt.p.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestSourceString(t *testing.T) {
	for src, want := range map[Source]string{
		SourceFetched:         "fetched",
		SourceTimeoutFallback: "timeout-fallback",
		SourceErrorFallback:   "error-fallback",
		Source(99):            "unknown",
	} {
		if got := src.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", src, got, want)
		}
	}
}
