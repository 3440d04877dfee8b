package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	interfaces "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Interfaces"
)

// ErrNotLoggedIn is returned by Logout when the user has no open
// session (last_login already empty).
var ErrNotLoggedIn = errors.New("user hasn't logged in")

// SessionService implements the per-user session state machine on top
// of the user document's last_login field. States: logged out
// (last_login empty), fresh (elapsed <= timeout), expired
// (elapsed > timeout, last_login not yet cleared).
type SessionService struct {
	userRepo interfaces.UserRepository
	timeout  time.Duration
}

func NewSessionService(userRepo interfaces.UserRepository, timeout time.Duration) *SessionService {
	return &SessionService{userRepo: userRepo, timeout: timeout}
}

// Login hashes the submitted password and resolves the account with a
// single equality query on (email, password). A match opens a session
// by stamping last_login with the current clock string. Returns
// (nil, nil) on bad credentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (*stsmodels.User, error) {
	user, err := s.userRepo.FindByCredentials(ctx, email, HashPassword(password))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	now := NowClock()
	if err := s.userRepo.SetLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = now
	return user, nil
}

// Logout clears last_login. Logging out a user with no open session is
// an error, not a no-op.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.LastLogin == "" {
		return ErrNotLoggedIn
	}
	return s.userRepo.SetLastLogin(ctx, userID, "")
}

// CheckSession reports whether the session is still inside the expiry
// window. Both last_login and "now" are reconstructed into absolute
// instants before subtracting; lexical ordering of the clock strings
// is never relied on. An active check refreshes last_login, sliding
// the window forward. Inactive results mutate nothing: an expired
// last_login stays in place until logout.
func (s *SessionService) CheckSession(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.LastLogin == "" {
		return false, nil
	}

	lastLogin, err := ParseClock(user.LastLogin)
	if err != nil {
		return false, fmt.Errorf("malformed last_login %q: %w", user.LastLogin, err)
	}

	now := NowClock()
	nowInstant, err := ParseClock(now)
	if err != nil {
		return false, err
	}

	if nowInstant.Sub(lastLogin) > s.timeout {
		return false, nil
	}

	if err := s.userRepo.SetLastLogin(ctx, userID, now); err != nil {
		return false, err
	}
	return true, nil
}

// Heartbeat unconditionally restamps last_login with the current clock
// string. No expiry check is performed.
func (s *SessionService) Heartbeat(ctx context.Context, userID string) error {
	return s.userRepo.SetLastLogin(ctx, userID, NowClock())
}
