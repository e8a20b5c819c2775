// Package ads defines the monetization collaborator contract. Every call is
// best-effort with short latency; a failure degrades to "no ad" and the game
// continues.
package ads

import (
	"context"
	"errors"
	"time"
)

type Provider interface {
	ShowInterstitial(ctx context.Context) error
	// ShowRewarded reports whether the reward was actually granted.
	ShowRewarded(ctx context.Context) (bool, error)
	ShowBanner()
	HideBanner()
}

// Stub simulates the network SDK: a short blocking window per call, with an
// optional forced failure for exercising the degraded path.
type Stub struct {
	Latency time.Duration
	Fail    bool

	bannerVisible bool
	interstitials int
}

func NewStub() *Stub {
	return &Stub{Latency: 300 * time.Millisecond}
}

func (s *Stub) ShowInterstitial(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if s.Fail {
		return errors.New("interstitial unavailable")
	}
	s.interstitials++
	return nil
}

func (s *Stub) ShowRewarded(ctx context.Context) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	if s.Fail {
		return false, errors.New("rewarded ad unavailable")
	}
	return true, nil
}

func (s *Stub) ShowBanner() { s.bannerVisible = true }
func (s *Stub) HideBanner() { s.bannerVisible = false }

// Interstitials reports how many interstitials completed, for tests.
func (s *Stub) Interstitials() int { return s.interstitials }

func (s *Stub) wait(ctx context.Context) error {
	if s.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
