package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"FloodGrid-App/internal/domain/helper"
	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/repository"
	"FloodGrid-App/internal/domain/service"
)

var (
	// ErrInvalidCoordinates latitude/longitude text did not parse as decimal degrees in range
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrNoActiveSession no poll session is running
	ErrNoActiveSession = errors.New("no active poll session")
)

// DefaultPollInterval delay between two poll cycles
const DefaultPollInterval = 3 * time.Second

type PollUseCase interface {
	// StartSession cancels any running session and starts polling around the given center
	StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.SessionStatus, error)
	// StopSession cancels the running session
	StopSession(ctx context.Context) error
	// Status returns the running session's status
	Status() (*model.SessionStatus, error)
	// CurrentGrid returns the last rendered grid of the running session
	CurrentGrid() (*model.GridSnapshot, error)
}

// pollUseCaseImpl keeps at most one poll session alive.
// Starting a session while another runs cancels the old one and waits for it to exit.
type pollUseCaseImpl struct {
	renderer      service.GridRenderer
	simulator     service.ReadingSimulator
	readingsRepo  repository.ReadingsRepository
	snapshotRepos []repository.GridSnapshotRepository
	interval      time.Duration

	startMu sync.Mutex // serializes StartSession/StopSession
	mu      sync.RWMutex
	active  *pollSession
}

// NewPollUseCase creates the poll use case
func NewPollUseCase(
	renderer service.GridRenderer,
	simulator service.ReadingSimulator,
	readingsRepo repository.ReadingsRepository,
	interval time.Duration,
	snapshotRepos ...repository.GridSnapshotRepository,
) PollUseCase {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &pollUseCaseImpl{
		renderer:      renderer,
		simulator:     simulator,
		readingsRepo:  readingsRepo,
		snapshotRepos: snapshotRepos,
		interval:      interval,
	}
}

// pollSession one running loop and the view it renders into
type pollSession struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	state    *model.ViewState
	snapshot *model.GridSnapshot
	status   model.SessionStatus
}

func (s *pollSession) stop() {
	s.cancel()
	<-s.done
}

func (s *pollSession) recordFailure(kind string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case "submit":
		s.status.SubmitFailures++
	case "fetch":
		s.status.FetchFailures++
	}
	s.status.LastError = fmt.Sprintf("%s: %v", kind, err)
}

// ParseCoordinates parses typed latitude/longitude text as decimal degrees
func ParseCoordinates(latText, lngText string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, latText)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, lngText)
	}
	if !helper.ValidateCoordinates(lat, lng) {
		return 0, 0, fmt.Errorf("%w: (%f, %f) out of range", ErrInvalidCoordinates, lat, lng)
	}
	return lat, lng, nil
}

func (u *pollUseCaseImpl) StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.SessionStatus, error) {
	lat, lng, err := ParseCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	u.startMu.Lock()
	defer u.startMu.Unlock()

	u.mu.Lock()
	previous := u.active
	u.active = nil
	u.mu.Unlock()
	if previous != nil {
		log.Printf("🛑 Cancelling poll session %s before starting a new one", previous.id)
		previous.stop()
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	session := &pollSession{
		id:     uuid.New().String(),
		cancel: cancel,
		done:   make(chan struct{}),
		state:  model.NewViewState(lat, lng, req.ShowPrediction),
	}
	session.status = model.SessionStatus{
		SessionID:      session.id,
		Center:         &model.Location{Latitude: lat, Longitude: lng},
		ShowPrediction: req.ShowPrediction,
		Active:         true,
		StartedAt:      time.Now(),
	}

	// empty grid first so the map has something to show before the first cycle
	base := u.renderer.DrawGrid(session.state)
	session.snapshot = u.buildSnapshot(session, base, nil)

	if req.ShowPrediction {
		readings := u.fetchReadings(ctx, session)
		session.mu.Lock()
		rendered := u.renderer.UpdateWithReadings(session.state, readings)
		prediction := u.renderer.UpdatePredictionOverlay(session.state, readings)
		session.snapshot = u.buildSnapshot(session, rendered, prediction)
		session.mu.Unlock()
	}

	u.mu.Lock()
	u.active = session
	u.mu.Unlock()

	go u.run(loopCtx, session)

	log.Printf("🚀 Poll session %s started at (%.6f, %.6f), prediction=%t, every %s",
		session.id, lat, lng, req.ShowPrediction, u.interval)

	return u.statusOf(session), nil
}

func (u *pollUseCaseImpl) StopSession(ctx context.Context) error {
	u.startMu.Lock()
	defer u.startMu.Unlock()

	u.mu.Lock()
	session := u.active
	u.active = nil
	u.mu.Unlock()

	if session == nil {
		return ErrNoActiveSession
	}

	session.stop()
	log.Printf("🛑 Poll session %s stopped", session.id)
	return nil
}

func (u *pollUseCaseImpl) Status() (*model.SessionStatus, error) {
	u.mu.RLock()
	session := u.active
	u.mu.RUnlock()

	if session == nil {
		return nil, ErrNoActiveSession
	}
	return u.statusOf(session), nil
}

func (u *pollUseCaseImpl) CurrentGrid() (*model.GridSnapshot, error) {
	u.mu.RLock()
	session := u.active
	u.mu.RUnlock()

	if session == nil {
		return nil, ErrNoActiveSession
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot, nil
}

func (u *pollUseCaseImpl) statusOf(session *pollSession) *model.SessionStatus {
	session.mu.Lock()
	defer session.mu.Unlock()
	status := session.status
	return &status
}

// run repeats poll cycles until ctx is cancelled
func (u *pollUseCaseImpl) run(ctx context.Context, session *pollSession) {
	defer close(session.done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		u.runCycle(ctx, session)
		timer.Reset(u.interval)
	}
}

// runCycle submit -> fetch -> render -> publish
func (u *pollUseCaseImpl) runCycle(ctx context.Context, session *pollSession) {
	reading := u.simulator.Next()
	if err := u.readingsRepo.Submit(ctx, reading); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("⚠️ Error sending data: %v", err)
		session.recordFailure("submit", err)
	}

	readings := u.fetchReadings(ctx, session)
	if ctx.Err() != nil {
		return
	}

	session.mu.Lock()
	base := u.renderer.UpdateWithReadings(session.state, readings)
	var prediction *model.Layer
	if session.state.ShowPrediction {
		prediction = u.renderer.UpdatePredictionOverlay(session.state, readings)
	}
	snapshot := u.buildSnapshot(session, base, prediction)
	session.snapshot = snapshot
	session.status.Cycles++
	session.status.LastCycleAt = snapshot.UpdatedAt
	session.mu.Unlock()

	u.publish(ctx, snapshot)
}

// fetchReadings degrades a failed fetch to an empty dataset; the failure is still counted on the session
func (u *pollUseCaseImpl) fetchReadings(ctx context.Context, session *pollSession) []model.Reading {
	readings, err := u.readingsRepo.FetchAll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("⚠️ Error fetching data, rendering empty grid: %v", err)
			session.recordFailure("fetch", err)
		}
		return []model.Reading{}
	}
	return readings
}

func (u *pollUseCaseImpl) buildSnapshot(session *pollSession, base *model.RenderResult, prediction *model.Layer) *model.GridSnapshot {
	return &model.GridSnapshot{
		SessionID:       session.id,
		Center:          session.state.Center,
		Viewport:        session.state.Viewport,
		Counters:        base.Counters,
		BaseLayer:       base.Layer,
		PredictionLayer: prediction,
		UpdatedAt:       time.Now(),
	}
}

func (u *pollUseCaseImpl) publish(ctx context.Context, snapshot *model.GridSnapshot) {
	for _, repo := range u.snapshotRepos {
		if err := repo.Save(ctx, snapshot); err != nil {
			log.Printf("⚠️ Failed to publish grid snapshot: %v", err)
		}
	}
}
