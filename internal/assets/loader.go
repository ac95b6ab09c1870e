package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

// Strategy is one way of acquiring an asset. Load must honor ctx and may
// call report with byte progress.
type Strategy[T any] struct {
	Name string
	Load func(ctx context.Context, report ReportFunc) (T, error)
}

// Loader acquires one asset with a timeout and a fallback.
//
// The outcome is one of: fetched, timeout fallback, error fallback. The
// timeout timer starts when Start is called. Whichever terminal transition
// happens first wins; later outcomes are logged and dropped.
type Loader[T any] struct {
	Name       string
	Timeout    time.Duration
	RetryDelay time.Duration
	Strategies []Strategy[T]

	// Fallback builds the substitute asset. It must not fail.
	Fallback func() T

	// OnProgress is called from the loading goroutine.
	OnProgress ReportFunc
}

// Start begins loading in the background and returns immediately.
func (l *Loader[T]) Start(ctx context.Context) *Pending[T] {
	log := logger.Named("assets").With(zap.String("asset", l.Name))
	p := newPending[T]()
	p.progress = newProgressTracker(l.OnProgress)

	ctx, cancel := context.WithCancel(ctx)
	started := time.Now()

	var timer *time.Timer
	if l.Timeout > 0 {
		timer = time.AfterFunc(l.Timeout, func() {
			if p.resolve(func() Result[T] {
				return l.fallback(SourceTimeoutFallback, ErrTimeout, started)
			}) {
				log.Warn("load timed out, using fallback", zap.Duration("timeout", l.Timeout))
			}
			cancel()
		})
	}

	go func() {
		defer cancel()
		asset, err := l.run(ctx, p.progress.Report, log)
		if timer != nil {
			timer.Stop()
		}

		if err != nil {
			if p.resolve(func() Result[T] {
				return l.fallback(SourceErrorFallback, err, started)
			}) {
				log.Warn("load failed, using fallback", zap.Error(err))
			} else {
				log.Debug("late load error ignored", zap.Error(err))
			}
			return
		}

		if p.resolve(func() Result[T] {
			return Result[T]{Asset: asset, Source: SourceFetched, Elapsed: time.Since(started)}
		}) {
			log.Info("asset loaded", zap.Duration("elapsed", time.Since(started)))
		} else {
			log.Info("late load result ignored, fallback already in place")
		}
	}()

	return p
}

// run tries each strategy in order, pausing RetryDelay between attempts.
func (l *Loader[T]) run(ctx context.Context, report ReportFunc, log *zap.Logger) (T, error) {
	var zero T
	if len(l.Strategies) == 0 {
		return zero, ErrNoStrategies
	}

	var errs []error
	for i, s := range l.Strategies {
		if i > 0 && l.RetryDelay > 0 {
			select {
			case <-time.After(l.RetryDelay):
			case <-ctx.Done():
				errs = append(errs, ctx.Err())
				return zero, fmt.Errorf("%w: %w", ErrExhausted, errors.Join(errs...))
			}
		}

		asset, err := s.Load(ctx, report)
		if err == nil {
			if i > 0 {
				log.Info("strategy succeeded after retry", zap.String("strategy", s.Name))
			}
			return asset, nil
		}
		log.Warn("load strategy failed",
			zap.String("strategy", s.Name),
			zap.Int("attempt", i+1),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))

		if ctx.Err() != nil {
			break
		}
	}
	return zero, fmt.Errorf("%w: %w", ErrExhausted, errors.Join(errs...))
}

func (l *Loader[T]) fallback(src Source, err error, started time.Time) Result[T] {
	var asset T
	if l.Fallback != nil {
		asset = l.Fallback()
	}
	return Result[T]{Asset: asset, Source: src, Err: err, Elapsed: time.Since(started)}
}
