package identity

import (
	"context"
	"sync"

	"eventmart/internal/logger"

	"go.uber.org/zap"
)

type ChangeType string

const (
	SignedIn  ChangeType = "signed_in"
	SignedOut ChangeType = "signed_out"
)

// Change is delivered to subscribers on every session change. On sign-out
// only the identity id is guaranteed to be populated.
type Change struct {
	Type     ChangeType
	Identity *Identity
}

// Service is the auth collaborator facade. Identity changes (login, logout)
// are fanned out to subscribers so dependent state can react without a
// reload of anything.
type Service interface {
	SignUp(ctx context.Context, name, email, password, role string) (*SignUpResult, error)
	Login(ctx context.Context, email, password string) (string, *Identity, error)
	Logout(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*Identity, error)
	Subscribe(fn func(Change)) (unsubscribe func())
}

type service struct {
	repo Repository

	mu      sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		subs: make(map[int]func(Change)),
	}
}

func (s *service) SignUp(ctx context.Context, name, email, password, role string) (*SignUpResult, error) {
	log := logger.FromCtx(ctx)

	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	a, err := s.repo.Create(ctx, name, email, hashed, r)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	log.Info("signup completed",
		zap.String("user_id", a.ID),
		zap.String("role", string(a.Role)),
	)

	return &SignUpResult{
		Identity:             a.Identity(),
		RequiresConfirmation: false,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Identity, error) {
	log := logger.FromCtx(ctx)

	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login failed, email not found", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, a.PasswordHash) {
		log.Warn("login failed, password mismatch", zap.String("user_id", a.ID))
		return "", nil, ErrInvalidCredentials
	}

	ident := a.Identity()

	token, err := GenerateJWT(ident)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", a.ID), zap.Error(err))
		return "", nil, err
	}

	if err := s.repo.SaveSession(ctx, a.ID); err != nil {
		log.Error("failed to save session", zap.String("user_id", a.ID), zap.Error(err))
		return "", nil, err
	}

	s.notify(Change{Type: SignedIn, Identity: ident})

	return token, ident, nil
}

// Logout revokes the stored session best-effort. Subscribers are always
// told the identity is gone, even when the revoke fails; the caller only
// gets the error for logging.
func (s *service) Logout(ctx context.Context, userID string) error {
	err := s.repo.DeleteSessions(ctx, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to revoke sessions",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	s.notify(Change{Type: SignedOut, Identity: &Identity{ID: userID}})

	return err
}

func (s *service) GetByID(ctx context.Context, id string) (*Identity, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Identity(), nil
}

func (s *service) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *service) notify(c Change) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
