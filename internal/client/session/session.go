// Package session связывает вход пользователя с менеджерами коллекций.
// Сессия владеет менеджерами: данные одного пользователя не переживают выход.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/looplab/fsm"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fitsync/internal/client/auth"
	"github.com/iudanet/fitsync/internal/client/manager"
	"github.com/iudanet/fitsync/internal/client/storage"
)

// Состояния сессии
const (
	StateSignedOut = "signed_out"
	StateLoading   = "loading"
	StateReady     = "ready"
	StateClosing   = "closing"
)

const (
	eventOpen   = "open"
	eventLoaded = "loaded"
	eventFail   = "fail"
	eventClose  = "close"
	eventClosed = "closed"
)

// ErrNotReady операция требует открытой сессии
var ErrNotReady = errors.New("session is not ready")

// Session сессия пользователя
type Session struct {
	auth     auth.Service
	managers *manager.Set
	machine  *fsm.FSM
	logger   *slog.Logger
	user     *storage.AuthData
	mu       sync.RWMutex
}

// New создает закрытую сессию
func New(authSvc auth.Service, managers *manager.Set, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		auth:     authSvc,
		managers: managers,
		logger:   logger,
	}

	s.machine = fsm.NewFSM(
		StateSignedOut,
		fsm.Events{
			{Name: eventOpen, Src: []string{StateSignedOut}, Dst: StateLoading},
			{Name: eventLoaded, Src: []string{StateLoading}, Dst: StateReady},
			{Name: eventFail, Src: []string{StateLoading}, Dst: StateSignedOut},
			{Name: eventClose, Src: []string{StateReady, StateLoading}, Dst: StateClosing},
			{Name: eventClosed, Src: []string{StateClosing}, Dst: StateSignedOut},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.logger.Debug("Session state changed", "from", e.Src, "to", e.Dst, "event", e.Event)
			},
		},
	)

	return s
}

// State возвращает текущее состояние
func (s *Session) State() string {
	return s.machine.Current()
}

// User возвращает данные вошедшего пользователя, nil если сессия закрыта
func (s *Session) User() *storage.AuthData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Managers возвращает менеджеры открытой сессии
func (s *Session) Managers() (*manager.Set, error) {
	if s.State() != StateReady {
		return nil, ErrNotReady
	}
	return s.managers, nil
}

// Open восстанавливает сохраненную сессию и загружает данные.
// Returns storage.ErrAuthNotFound if there is nothing to restore
func (s *Session) Open(ctx context.Context) error {
	return s.open(ctx, s.auth.Restore)
}

// Login выполняет вход и загружает данные
func (s *Session) Login(ctx context.Context, username, password string) error {
	return s.open(ctx, func(ctx context.Context) (*storage.AuthData, error) {
		return s.auth.Login(ctx, username, password)
	})
}

func (s *Session) open(ctx context.Context, authenticate func(context.Context) (*storage.AuthData, error)) error {
	if err := s.machine.Event(ctx, eventOpen); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	user, err := authenticate(ctx)
	if err != nil {
		s.fail(ctx)
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		s.managers.Reset()
		s.clearUser()
		s.fail(ctx)
		return err
	}

	if err := s.machine.Event(ctx, eventLoaded); err != nil {
		return fmt.Errorf("failed to mark session ready: %w", err)
	}

	s.logger.Info("Session opened", "username", user.Username, "user_id", user.UserID)
	return nil
}

// load гидрирует все коллекции параллельно; ошибка одной отменяет остальные
func (s *Session) load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range s.managers.All() {
		g.Go(func() error {
			if err := c.Load(gctx); err != nil {
				return fmt.Errorf("failed to load %s: %w", c.Collection(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reload перезагружает все коллекции открытой сессии
func (s *Session) Reload(ctx context.Context) error {
	if s.State() != StateReady {
		return ErrNotReady
	}
	return s.load(ctx)
}

// Close закрывает сессию, не выходя из учетной записи: токен остается сохраненным.
// Незавершенные мутации ждут до отмены ctx, после чего отбрасываются.
func (s *Session) Close(ctx context.Context) error {
	return s.close(ctx, false)
}

// Logout закрывает сессию и удаляет учетные данные с устройства
func (s *Session) Logout(ctx context.Context) error {
	return s.close(ctx, true)
}

func (s *Session) close(ctx context.Context, logout bool) error {
	if s.State() == StateSignedOut {
		if logout {
			return s.auth.Logout(ctx)
		}
		return nil
	}

	if err := s.machine.Event(ctx, eventClose); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	if pending := s.managers.Pending(); pending > 0 {
		if err := s.managers.Drain(ctx); err != nil {
			s.logger.Warn("Abandoning pending mutations", "pending", s.managers.Pending(), "error", err)
		}
	}

	s.managers.Reset()
	s.clearUser()

	var logoutErr error
	if logout {
		logoutErr = s.auth.Logout(context.WithoutCancel(ctx))
	}

	if err := s.machine.Event(context.WithoutCancel(ctx), eventClosed); err != nil {
		return fmt.Errorf("failed to finish closing session: %w", err)
	}

	s.logger.Info("Session closed", "logout", logout)
	return logoutErr
}

func (s *Session) fail(ctx context.Context) {
	if err := s.machine.Event(context.WithoutCancel(ctx), eventFail); err != nil {
		s.logger.Error("Failed to reset session state", "error", err)
	}
}

func (s *Session) clearUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
