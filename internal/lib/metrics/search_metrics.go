package metrics

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// SearchMetrics — in-process counters for the query service. The
// service is stateless across requests; these counters are the one
// shared structure, all updated atomically.
type SearchMetrics struct {
	log *slog.Logger

	searchCallsTotal  int64
	suggestCallsTotal int64
	adminCallsTotal   int64

	searchErrorsTotal  int64
	suggestErrorsTotal int64
	adminErrorsTotal   int64

	// Суммарная задержка (для расчёта среднего)
	searchLatencyTotalMs  int64
	suggestLatencyTotalMs int64
	adminLatencyTotalMs   int64

	searchLastLatencyMs  int64
	suggestLastLatencyMs int64
	adminLastLatencyMs   int64
}

var (
	globalMetrics *SearchMetrics
	metricsOnce   sync.Once
)

// GetSearchMetrics возвращает глобальный экземпляр метрик.
func GetSearchMetrics(log *slog.Logger) *SearchMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &SearchMetrics{log: log}
	})
	return globalMetrics
}

// OperationKind — which endpoint family a call belongs to.
type OperationKind string

const (
	OpSearch  OperationKind = "search"
	OpSuggest OperationKind = "suggest"
	OpAdmin   OperationKind = "admin"
)

// RecordCall записывает один вызов.
func (m *SearchMetrics) RecordCall(kind OperationKind, latency time.Duration, err error) {
	latencyMs := latency.Milliseconds()

	switch kind {
	case OpSearch:
		atomic.AddInt64(&m.searchCallsTotal, 1)
		atomic.AddInt64(&m.searchLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.searchLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.searchErrorsTotal, 1)
		}
	case OpSuggest:
		atomic.AddInt64(&m.suggestCallsTotal, 1)
		atomic.AddInt64(&m.suggestLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.suggestLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.suggestErrorsTotal, 1)
		}
	case OpAdmin:
		atomic.AddInt64(&m.adminCallsTotal, 1)
		atomic.AddInt64(&m.adminLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.adminLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.adminErrorsTotal, 1)
		}
	}

	if m.log != nil {
		logAttrs := []any{
			slog.String("kind", string(kind)),
			slog.Int64("latency_ms", latencyMs),
		}
		if err != nil {
			logAttrs = append(logAttrs, slog.String("error", err.Error()))
			m.log.Warn("query service call failed", logAttrs...)
		} else {
			m.log.Debug("query service call completed", logAttrs...)
		}
	}
}

// CallTimer помогает измерять время вызовов.
type CallTimer struct {
	metrics   *SearchMetrics
	kind      OperationKind
	startTime time.Time
}

// StartTimer начинает измерение времени вызова.
func (m *SearchMetrics) StartTimer(kind OperationKind) *CallTimer {
	return &CallTimer{
		metrics:   m,
		kind:      kind,
		startTime: time.Now(),
	}
}

// Stop останавливает таймер и записывает метрики.
func (t *CallTimer) Stop(err error) {
	t.metrics.RecordCall(t.kind, time.Since(t.startTime), err)
}

// Stats — текущая статистика по операциям.
type Stats struct {
	Search  OperationStats `json:"search"`
	Suggest OperationStats `json:"suggest"`
	Admin   OperationStats `json:"admin"`
}

// OperationStats — статистика по одному виду операций.
type OperationStats struct {
	CallsTotal    int64   `json:"calls_total"`
	ErrorsTotal   int64   `json:"errors_total"`
	ErrorRate     float64 `json:"error_rate"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	LastLatencyMs int64   `json:"last_latency_ms"`
}

// GetStats возвращает текущую статистику.
func (m *SearchMetrics) GetStats() Stats {
	return Stats{
		Search:  m.getOperationStats(OpSearch),
		Suggest: m.getOperationStats(OpSuggest),
		Admin:   m.getOperationStats(OpAdmin),
	}
}

func (m *SearchMetrics) getOperationStats(kind OperationKind) OperationStats {
	var calls, errs, latencyTotal, lastLatency int64

	switch kind {
	case OpSearch:
		calls = atomic.LoadInt64(&m.searchCallsTotal)
		errs = atomic.LoadInt64(&m.searchErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.searchLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.searchLastLatencyMs)
	case OpSuggest:
		calls = atomic.LoadInt64(&m.suggestCallsTotal)
		errs = atomic.LoadInt64(&m.suggestErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.suggestLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.suggestLastLatencyMs)
	case OpAdmin:
		calls = atomic.LoadInt64(&m.adminCallsTotal)
		errs = atomic.LoadInt64(&m.adminErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.adminLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.adminLastLatencyMs)
	}

	var errorRate, avgLatency float64
	if calls > 0 {
		errorRate = float64(errs) / float64(calls)
		avgLatency = float64(latencyTotal) / float64(calls)
	}

	return OperationStats{
		CallsTotal:    calls,
		ErrorsTotal:   errs,
		ErrorRate:     errorRate,
		AvgLatencyMs:  avgLatency,
		LastLatencyMs: lastLatency,
	}
}

// Reset сбрасывает все метрики.
func (m *SearchMetrics) Reset() {
	atomic.StoreInt64(&m.searchCallsTotal, 0)
	atomic.StoreInt64(&m.suggestCallsTotal, 0)
	atomic.StoreInt64(&m.adminCallsTotal, 0)
	atomic.StoreInt64(&m.searchErrorsTotal, 0)
	atomic.StoreInt64(&m.suggestErrorsTotal, 0)
	atomic.StoreInt64(&m.adminErrorsTotal, 0)
	atomic.StoreInt64(&m.searchLatencyTotalMs, 0)
	atomic.StoreInt64(&m.suggestLatencyTotalMs, 0)
	atomic.StoreInt64(&m.adminLatencyTotalMs, 0)
	atomic.StoreInt64(&m.searchLastLatencyMs, 0)
	atomic.StoreInt64(&m.suggestLastLatencyMs, 0)
	atomic.StoreInt64(&m.adminLastLatencyMs, 0)
}
