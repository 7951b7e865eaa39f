package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/service/draft/models"
)

// Manager is the registry of live draft controllers. One controller per
// open booking form; the janitor closes drafts nobody touched for a
// while.
type Manager struct {
	deps    *Deps
	metrics Metrics
	logger  Logger

	mu     sync.RWMutex
	drafts map[uuid.UUID]*Controller
}

// NewManager creates the draft registry.
func NewManager(deps *Deps, metrics Metrics, logger Logger) *Manager {
	return &Manager{
		deps:    deps,
		metrics: metrics,
		logger:  logger,
		drafts:  make(map[uuid.UUID]*Controller),
	}
}

// Create opens a new draft and returns its controller.
func (m *Manager) Create(req *models.CreateRequest) (*Controller, error) {
	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: location id is required", ErrInvalidInput)
	}
	if !req.Mode.Valid() {
		req.Mode = domain.ModeBooking
	}
	if len(req.ResourceIDs) > domain.MaxResourcesPerReservation {
		return nil, fmt.Errorf("%w: too many resources", ErrInvalidInput)
	}

	id := uuid.New()
	controller := newController(id, req, m.deps)

	m.mu.Lock()
	m.drafts[id] = controller
	count := len(m.drafts)
	m.mu.Unlock()

	m.metrics.SetActiveDrafts(count)
	m.logger.Info("DraftManager: opened draft %s (location=%d, mode=%s, active=%d)",
		id, req.LocationID, req.Mode, count)
	return controller, nil
}

// Get returns the live controller for the id.
func (m *Manager) Get(id uuid.UUID) (*Controller, error) {
	m.mu.RLock()
	controller, ok := m.drafts[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrDraftNotFound
	}
	return controller, nil
}

// Close tears down one draft and removes it from the registry.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	controller, ok := m.drafts[id]
	if ok {
		delete(m.drafts, id)
	}
	count := len(m.drafts)
	m.mu.Unlock()

	if !ok {
		return ErrDraftNotFound
	}

	controller.Close()
	m.metrics.SetActiveDrafts(count)
	m.logger.Info("DraftManager: closed draft %s (active=%d)", id, count)
	return nil
}

// CloseIdle tears down drafts untouched for longer than ttl and returns
// how many were closed.
func (m *Manager) CloseIdle(ttl time.Duration) int {
	cutoff := m.deps.Timer.Now().Add(-ttl)

	m.mu.Lock()
	var expired []*Controller
	for id, controller := range m.drafts {
		if controller.LastTouched().Before(cutoff) {
			expired = append(expired, controller)
			delete(m.drafts, id)
		}
	}
	count := len(m.drafts)
	m.mu.Unlock()

	for _, controller := range expired {
		controller.Close()
	}
	if len(expired) > 0 {
		m.metrics.SetActiveDrafts(count)
	}
	return len(expired)
}

// CloseAll tears down every draft, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	controllers := make([]*Controller, 0, len(m.drafts))
	for _, controller := range m.drafts {
		controllers = append(controllers, controller)
	}
	m.drafts = make(map[uuid.UUID]*Controller)
	m.mu.Unlock()

	for _, controller := range controllers {
		controller.Close()
	}
	m.metrics.SetActiveDrafts(0)
}

// Count returns the number of live drafts.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.drafts)
}
