package metrics

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestSearchMetrics_RecordCall(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := &SearchMetrics{log: log}
	m.Reset()

	// Успешный поисковый вызов
	m.RecordCall(OpSearch, 100*time.Millisecond, nil)

	stats := m.GetStats()
	if stats.Search.CallsTotal != 1 {
		t.Errorf("expected 1 search call, got %d", stats.Search.CallsTotal)
	}
	if stats.Search.ErrorsTotal != 0 {
		t.Errorf("expected 0 search errors, got %d", stats.Search.ErrorsTotal)
	}

	// Вызов с ошибкой
	m.RecordCall(OpSearch, 50*time.Millisecond, errors.New("test error"))

	stats = m.GetStats()
	if stats.Search.CallsTotal != 2 {
		t.Errorf("expected 2 search calls, got %d", stats.Search.CallsTotal)
	}
	if stats.Search.ErrorsTotal != 1 {
		t.Errorf("expected 1 search error, got %d", stats.Search.ErrorsTotal)
	}
}

func TestSearchMetrics_RecordCall_AllOperations(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := &SearchMetrics{log: log}
	m.Reset()

	m.RecordCall(OpSearch, 100*time.Millisecond, nil)
	m.RecordCall(OpSuggest, 50*time.Millisecond, nil)
	m.RecordCall(OpAdmin, 200*time.Millisecond, nil)

	stats := m.GetStats()

	if stats.Search.CallsTotal != 1 {
		t.Errorf("expected 1 search call, got %d", stats.Search.CallsTotal)
	}
	if stats.Suggest.CallsTotal != 1 {
		t.Errorf("expected 1 suggest call, got %d", stats.Suggest.CallsTotal)
	}
	if stats.Admin.CallsTotal != 1 {
		t.Errorf("expected 1 admin call, got %d", stats.Admin.CallsTotal)
	}
}

func TestSearchMetrics_Timer(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := &SearchMetrics{log: log}
	m.Reset()

	timer := m.StartTimer(OpSuggest)
	time.Sleep(10 * time.Millisecond)
	timer.Stop(nil)

	stats := m.GetStats()
	if stats.Suggest.CallsTotal != 1 {
		t.Errorf("expected 1 suggest call, got %d", stats.Suggest.CallsTotal)
	}
	if stats.Suggest.LastLatencyMs < 10 {
		t.Errorf("expected latency >= 10ms, got %d", stats.Suggest.LastLatencyMs)
	}
}

func TestSearchMetrics_ErrorRate(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := &SearchMetrics{log: log}
	m.Reset()

	// 3 успешных вызова, 1 ошибка = error rate 25%
	m.RecordCall(OpSearch, 10*time.Millisecond, nil)
	m.RecordCall(OpSearch, 10*time.Millisecond, nil)
	m.RecordCall(OpSearch, 10*time.Millisecond, nil)
	m.RecordCall(OpSearch, 10*time.Millisecond, errors.New("error"))

	stats := m.GetStats()
	if stats.Search.ErrorRate != 0.25 {
		t.Errorf("expected error rate 0.25, got %.2f", stats.Search.ErrorRate)
	}
}

func TestSearchMetrics_AvgLatency(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := &SearchMetrics{log: log}
	m.Reset()

	m.RecordCall(OpAdmin, 100*time.Millisecond, nil)
	m.RecordCall(OpAdmin, 200*time.Millisecond, nil)

	stats := m.GetStats()
	if stats.Admin.AvgLatencyMs != 150.0 {
		t.Errorf("expected avg latency 150.00, got %.2f", stats.Admin.AvgLatencyMs)
	}
}

func TestSearchMetrics_Reset(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := &SearchMetrics{log: log}

	m.RecordCall(OpSearch, 100*time.Millisecond, nil)
	m.RecordCall(OpSuggest, 50*time.Millisecond, nil)

	m.Reset()

	stats := m.GetStats()
	if stats.Search.CallsTotal != 0 {
		t.Errorf("expected 0 search calls after reset, got %d", stats.Search.CallsTotal)
	}
	if stats.Suggest.CallsTotal != 0 {
		t.Errorf("expected 0 suggest calls after reset, got %d", stats.Suggest.CallsTotal)
	}
}

func TestGetSearchMetrics_Singleton(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	m1 := GetSearchMetrics(log)
	m2 := GetSearchMetrics(log)

	if m1 != m2 {
		t.Error("expected GetSearchMetrics to return singleton instance")
	}
}
