// Package daemon provides the long-running trip budget service. It watches
// the trip file, recomputes on change and serves the result over HTTP/SSE.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/model"
)

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventBudgetDelta = "budget_delta"
)

// Config controls the daemon runtime behavior.
type Config struct {
	TripFile     string
	Interval     time.Duration
	Addr         string
	EventsBuffer int

	// ComputeRate bounds POST /v1/budget requests per second.
	ComputeRate  rate.Limit
	ComputeBurst int

	Logger zerolog.Logger
}

// Snapshot is a compact budget state for status/event payloads.
type Snapshot struct {
	At             time.Time `json:"at"`
	Trip           string    `json:"trip,omitempty"`
	Students       int       `json:"students"`
	Mentors        int       `json:"mentors"`
	Lodging        string    `json:"lodging,omitempty"`
	TotalCost      float64   `json:"total_cost"`
	Revenue        float64   `json:"revenue"`
	GrossProfit    float64   `json:"gross_profit"`
	NetProfit      float64   `json:"net_profit"`
	CostPerStudent float64   `json:"cost_per_student"`
	MarginPercent  float64   `json:"margin_percent"`
	BreakEvenPrice float64   `json:"break_even_price"`
	SharesValid    bool      `json:"shares_valid"`
}

// Delta captures snapshot deltas between recomputes.
type Delta struct {
	Students    int     `json:"students"`
	Mentors     int     `json:"mentors"`
	TotalCost   float64 `json:"total_cost"`
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
	NetProfit   float64 `json:"net_profit"`
}

func (d Delta) isZero() bool {
	return d.Students == 0 &&
		d.Mentors == 0 &&
		d.TotalCost == 0 &&
		d.Revenue == 0 &&
		d.GrossProfit == 0 &&
		d.NetProfit == 0
}

// Event is emitted whenever the budget changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	LastComputeAt   time.Time `json:"last_compute_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	ComputeCount    int64     `json:"compute_count"`
	TripFile        string    `json:"trip_file"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	log     zerolog.Logger
	metrics *metrics
	limiter *rate.Limiter
	now     func() time.Time

	mu            sync.RWMutex
	startedAt     time.Time
	lastPollAt    time.Time
	lastComputeAt time.Time
	lastMtime     time.Time
	pollCount     int64
	computeCount  int64
	lastError     string
	hasSnapshot   bool
	snapshot      Snapshot
	result        model.BudgetResult
	nextEventID   int64
	events        []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 2 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.ComputeRate <= 0 {
		cfg.ComputeRate = 5
	}
	if cfg.ComputeBurst < 1 {
		cfg.ComputeBurst = 10
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger.With().Str("component", "daemon").Logger(),
		metrics:   newMetrics(),
		limiter:   rate.NewLimiter(cfg.ComputeRate, cfg.ComputeBurst),
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// pollOnce recomputes when the trip file's mtime moved since the last
// successful compute.
func (s *Service) pollOnce() {
	now := s.now()
	s.mu.Lock()
	s.lastPollAt = now
	s.pollCount++
	s.mu.Unlock()

	info, err := os.Stat(s.cfg.TripFile)
	var mtime time.Time
	switch {
	case err == nil:
		mtime = info.ModTime()
	case errors.Is(err, os.ErrNotExist):
		// LoadTrip falls back to the default trip
	default:
		s.recordError(fmt.Errorf("stat trip file: %w", err))
		return
	}

	s.mu.RLock()
	unchanged := s.hasSnapshot && s.lastError == "" && mtime.Equal(s.lastMtime)
	s.mu.RUnlock()
	if unchanged {
		return
	}

	trip, err := config.LoadTrip(s.cfg.TripFile)
	if err != nil {
		s.recordError(err)
		return
	}
	if err := config.Validate(trip); err != nil {
		s.log.Warn().Err(err).Msg("trip file has invalid values, clamping")
	}

	s.apply(config.Sanitize(trip), now)

	s.mu.Lock()
	s.lastMtime = mtime
	s.mu.Unlock()
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
	s.metrics.pollErrors.Inc()
	s.log.Error().Err(err).Str("trip_file", s.cfg.TripFile).Msg("poll failed")
}

// apply recomputes the budget for trip and publishes an event when anything
// moved.
func (s *Service) apply(trip model.TripConfig, at time.Time) {
	start := time.Now()
	res := budget.Compute(trip)
	s.metrics.observe(res, time.Since(start))

	snap := snapshotFromResult(trip, res, at)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.result = res
	s.lastComputeAt = at
	s.computeCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: at,
			Snapshot:  snap,
		}
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventBudgetDelta,
			Timestamp: at,
			Snapshot:  snap,
			Delta:     delta,
		}
		publish = true
	}
	s.mu.Unlock()

	s.log.Info().
		Float64("total_cost", res.TotalCost).
		Float64("gross_profit", res.GrossProfit).
		Float64("net_profit", res.NetProfit).
		Bool("published", publish).
		Msg("budget recomputed")

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotFromResult(trip model.TripConfig, res model.BudgetResult, at time.Time) Snapshot {
	lodging, _ := trip.Lodging()
	return Snapshot{
		At:             at,
		Trip:           trip.Name,
		Students:       trip.Group.Students,
		Mentors:        trip.Group.Mentors,
		Lodging:        lodging.Name,
		TotalCost:      res.TotalCost,
		Revenue:        res.Revenue.Total,
		GrossProfit:    res.GrossProfit,
		NetProfit:      res.NetProfit,
		CostPerStudent: res.CostPerStudent,
		MarginPercent:  res.MarginPercent,
		BreakEvenPrice: res.BreakEvenPrice,
		SharesValid:    res.Distribution.SharesValid,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Students:    curr.Students - prev.Students,
		Mentors:     curr.Mentors - prev.Mentors,
		TotalCost:   curr.TotalCost - prev.TotalCost,
		Revenue:     curr.Revenue - prev.Revenue,
		GrossProfit: curr.GrossProfit - prev.GrossProfit,
		NetProfit:   curr.NetProfit - prev.NetProfit,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
	s.metrics.events.WithLabelValues(ev.Type).Inc()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		LastComputeAt:   s.lastComputeAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		ComputeCount:    s.computeCount,
		TripFile:        s.cfg.TripFile,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) currentResult() (model.BudgetResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.hasSnapshot
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
