package usecases

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"roomhub/cache"
	"roomhub/entities"
	"roomhub/repositories"
)

const minPasswordLength = 8

type AuthUseCase struct {
	UserRepo    repositories.UserRepository
	SessionRepo repositories.SessionRepository
	Sessions    *cache.SessionCache
	SessionTTL  time.Duration
	BcryptCost  int
}

func NewAuthUseCase(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, sessions *cache.SessionCache, ttl time.Duration) *AuthUseCase {
	return &AuthUseCase{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Sessions:    sessions,
		SessionTTL:  ttl,
		BcryptCost:  bcrypt.DefaultCost,
	}
}

// Register creates a new account and logs it in. The username is trimmed and
// lowercased first, so names differing only in case are the same identity.
func (uc *AuthUseCase) Register(username, password string) (*entities.User, *entities.Session, error) {
	username = entities.NormalizeUsername(username)
	if username == "" {
		return nil, nil, errors.New("username is required")
	}
	if len(password) < minPasswordLength {
		return nil, nil, errors.New("password must be at least 8 characters")
	}

	if _, err := uc.UserRepo.GetByUsername(username); err == nil {
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uc.UserRepo.Create(user); err != nil {
		return nil, nil, err
	}

	session, err := uc.startSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies credentials and starts a session. An unknown username
// short-circuits to ErrInvalidCredentials; there is no second lookup with the
// raw input.
func (uc *AuthUseCase) Login(username, password string) (*entities.User, *entities.Session, error) {
	user, err := uc.UserRepo.GetByUsername(entities.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := uc.startSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout destroys the session behind a token. A missing or unknown token is a
// no-op.
func (uc *AuthUseCase) Logout(token string) error {
	if token == "" {
		return nil
	}
	uc.Sessions.Invalidate(token)
	return uc.SessionRepo.DeleteByToken(token)
}

// CurrentUser resolves a session token to its user. Unknown and expired
// tokens resolve to ErrNoSession, which callers treat as anonymous.
func (uc *AuthUseCase) CurrentUser(token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	if session, ok := uc.Sessions.Get(token); ok {
		user, err := uc.UserRepo.GetByID(session.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// Cached session for a user that no longer exists
				uc.Sessions.Invalidate(token)
				return nil, ErrNoSession
			}
			return nil, err
		}
		return user, nil
	}

	session, err := uc.SessionRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = uc.SessionRepo.DeleteByToken(token)
		return nil, ErrNoSession
	}

	uc.Sessions.Put(*session)
	user := session.User
	return &user, nil
}

func (uc *AuthUseCase) startSession(user *entities.User) (*entities.Session, error) {
	session := &entities.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(uc.SessionTTL),
	}
	if err := uc.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	session.User = *user
	uc.Sessions.Put(*session)
	return session, nil
}
