package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"

	"event-counter-service/internal/counter/core/domain"
	"event-counter-service/internal/counter/core/ports"
)

var ErrValueOutOfRange = errors.New("value exceeds storable range")

// EventCounterService counts events per identifier and resets a counter once it
// reaches its threshold, running the task registered by the last Count call.
//
// Counter state lives in the store. Tasks live in memory only and are lost on
// restart. Count/SetCounted are read-modify-write sequences with no locking;
// callers racing on one identifier can lose increments.
type EventCounterService struct {
	store  ports.KeyValueStore
	logger *log.Logger

	mu    sync.Mutex
	tasks map[string]domain.ResetTask
}

func NewEventCounterService(store ports.KeyValueStore, logger *log.Logger) *EventCounterService {
	if logger == nil {
		logger = log.Default()
	}
	return &EventCounterService{
		store:  store,
		logger: logger,
		tasks:  make(map[string]domain.ResetTask),
	}
}

// SetResetAtCount stores a new threshold and zeroes the counter. Setting the
// threshold it already has does nothing, the counter included.
func (s *EventCounterService) SetResetAtCount(ctx context.Context, value uint64, identifier string) error {
	current, err := s.ResetAtCount(ctx, identifier)
	if err != nil {
		return err
	}
	if value == current {
		return nil
	}

	stored, err := toStored(value)
	if err != nil {
		return err
	}
	if err := s.store.SetInteger(ctx, domain.ResetAtCountKey(identifier), stored); err != nil {
		return err
	}

	return s.SetCounted(ctx, 0, identifier)
}

// ResetAtCount returns 0 both for "never set" and "auto reset disabled".
func (s *EventCounterService) ResetAtCount(ctx context.Context, identifier string) (uint64, error) {
	return s.getUint(ctx, domain.ResetAtCountKey(identifier))
}

// SetCounted stores the count and resets it right away if it reached the threshold.
func (s *EventCounterService) SetCounted(ctx context.Context, value uint64, identifier string) error {
	stored, err := toStored(value)
	if err != nil {
		return err
	}
	if err := s.store.SetInteger(ctx, domain.CountedKey(identifier), stored); err != nil {
		return err
	}

	return s.checkCount(ctx, identifier)
}

func (s *EventCounterService) Counted(ctx context.Context, identifier string) (uint64, error) {
	return s.getUint(ctx, domain.CountedKey(identifier))
}

// Count increments the counter for identifier by one. task replaces any task
// registered earlier for the identifier and may be nil. If the increment reaches
// the threshold, the counter is reset and task runs before Count returns.
func (s *EventCounterService) Count(ctx context.Context, identifier string, task domain.ResetTask) error {
	// Presence, not value: a stored threshold of 0 means "disabled", not "new".
	configured, err := s.store.HasValue(ctx, domain.ResetAtCountKey(identifier))
	if err != nil {
		return err
	}
	if !configured {
		if err := s.SetResetAtCount(ctx, domain.DefaultResetAtCount, identifier); err != nil {
			return err
		}
	}

	s.register(identifier, task)

	before, err := s.Counted(ctx, identifier)
	if err != nil {
		return err
	}

	return s.SetCounted(ctx, before+1, identifier)
}

// Reset zeroes the counter. With performTask set, the registered task runs; a
// missing task is logged and otherwise ignored.
func (s *EventCounterService) Reset(ctx context.Context, identifier string, performTask bool) error {
	if err := s.SetCounted(ctx, 0, identifier); err != nil {
		return err
	}

	if !performTask {
		return nil
	}

	task := s.lookup(identifier)
	if task == nil {
		s.logger.Printf("No task to run at reset. Make sure to set a task for your event with identifier %s.", identifier)
		return nil
	}

	task()
	return nil
}

// Snapshot reads both persisted values for identifier.
func (s *EventCounterService) Snapshot(ctx context.Context, identifier string) (domain.Counter, error) {
	counted, err := s.Counted(ctx, identifier)
	if err != nil {
		return domain.Counter{}, err
	}
	resetAt, err := s.ResetAtCount(ctx, identifier)
	if err != nil {
		return domain.Counter{}, err
	}

	return domain.Counter{
		Identifier:   identifier,
		Counted:      counted,
		ResetAtCount: resetAt,
	}, nil
}

func (s *EventCounterService) checkCount(ctx context.Context, identifier string) error {
	counted, err := s.Counted(ctx, identifier)
	if err != nil {
		return err
	}
	resetAt, err := s.ResetAtCount(ctx, identifier)
	if err != nil {
		return err
	}

	if counted >= resetAt && resetAt != 0 && counted != 0 {
		return s.Reset(ctx, identifier, true)
	}
	return nil
}

func (s *EventCounterService) register(identifier string, task domain.ResetTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[identifier] = task
}

// lookup returns nil when nothing, or a nil task, was registered.
func (s *EventCounterService) lookup(identifier string) domain.ResetTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[identifier]
}

func (s *EventCounterService) getUint(ctx context.Context, key string) (uint64, error) {
	v, err := s.store.GetInteger(ctx, key)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, nil
	}
	return uint64(v), nil
}

func toStored(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, ErrValueOutOfRange
	}
	return int64(value), nil
}
