package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FlipCheck/internal/domain/models"
	drepo "FlipCheck/internal/domain/repository"
)

type fakeResolver struct {
	res   drepo.Resolution
	age   models.AccountAgeClass
	calls int
	asOf  time.Time
}

func (f *fakeResolver) Resolve(context.Context, string) drepo.Resolution {
	f.calls++
	return f.res
}

func (f *fakeResolver) AccountAge(_ context.Context, _ string, asOf time.Time) models.AccountAgeClass {
	f.asOf = asOf
	if f.age == "" {
		return models.AccountAgeUnknown
	}
	return f.age
}

type fakeHistory struct {
	h     models.FlipHistory
	err   error
	calls int
	days  int
}

func (f *fakeHistory) Fetch(_ context.Context, _ string, days int) (models.FlipHistory, error) {
	f.calls++
	f.days = days
	if f.err != nil {
		return models.FlipHistory{}, f.err
	}
	h := f.h
	h.WindowDays = days
	return h, nil
}

type fakeLimiter struct {
	ok   bool
	wait time.Duration
	err  error
}

func (f fakeLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return f.ok, f.wait, f.err
}

type fakeMetrics struct {
	mu       sync.Mutex
	checks   map[string]int
	upstream map[string]int
	scores   []float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{checks: map[string]int{}, upstream: map[string]int{}}
}

func (m *fakeMetrics) RecordCheck(command, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[command+"/"+result]++
}

func (m *fakeMetrics) RecordUpstreamError(service string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstream[service]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

func (m *fakeMetrics) RecordScore(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, score)
}

type fakeAuctions struct {
	list []models.Auction
	err  error
}

func (f fakeAuctions) Auctions(context.Context, string) ([]models.Auction, error) {
	return f.list, f.err
}

type fakeDeleter struct {
	deleted bool
	err     error
}

func (f fakeDeleter) Delete(context.Context, string) (bool, error) {
	return f.deleted, f.err
}

var errBoom = errors.New("boom")

func found(id string) drepo.Resolution { return drepo.Resolution{Status: drepo.Found, ID: id} }
