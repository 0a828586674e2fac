package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"MarketScout/internal/model"
)

type countingRunner struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (r *countingRunner) Run(context.Context) model.Report {
	n := r.calls.Add(1)
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	return model.Report{RunID: string(rune('0' + n))}
}

func TestRegister_InvalidSpec(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{})
	if err := s.Register("not a cron"); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	if err := s.Register("0 */5 * * * *"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 1 {
		t.Fatalf("expected 1 cron entry, got %d", n)
	}
}

func TestRunNow(t *testing.T) {
	r := &countingRunner{}
	s := NewScheduler(context.Background(), r)

	if got := s.RunNow().RunID; got != "1" {
		t.Errorf("expected run 1, got %q", got)
	}
	if got := s.RunNow().RunID; got != "2" {
		t.Errorf("expected run 2, got %q", got)
	}
}

func TestRunNow_OverlappingTriggersShareRun(t *testing.T) {
	r := &countingRunner{entered: make(chan struct{}, 1), release: make(chan struct{})}
	s := NewScheduler(context.Background(), r)

	var wg sync.WaitGroup
	reports := make([]model.Report, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		reports[0] = s.RunNow()
	}()
	<-r.entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		reports[1] = s.RunNow()
	}()
	time.Sleep(50 * time.Millisecond)
	close(r.release)
	wg.Wait()

	if n := r.calls.Load(); n != 1 {
		t.Fatalf("expected a single run, got %d", n)
	}
	if reports[0].RunID != reports[1].RunID {
		t.Errorf("expected shared report, got %q and %q", reports[0].RunID, reports[1].RunID)
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{})
	if err := s.Register("@every 1h"); err != nil {
		t.Fatalf("register: %v", err)
	}
	s.Start()
	s.Stop()
}
