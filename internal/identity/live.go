package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"togetherbikes/internal/domain"
	"togetherbikes/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Claims is the JWT payload carried by live session tokens
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// liveGateway authenticates against the user store and issues signed
// session tokens. Issued tokens are recorded server-side so sign-out can
// revoke them before their expiry.
type liveGateway struct {
	users        repository.UserRepository
	tokens       repository.SessionTokenRepository
	jwtSecret    string
	accessExpiry time.Duration
	logger       *zap.Logger
	events       *hub
}

// NewLiveGateway creates the production identity gateway
func NewLiveGateway(users repository.UserRepository, tokens repository.SessionTokenRepository, jwtSecret string, accessExpiryMinutes int, logger *zap.Logger) Gateway {
	return &liveGateway{
		users:        users,
		tokens:       tokens,
		jwtSecret:    jwtSecret,
		accessExpiry: time.Duration(accessExpiryMinutes) * time.Minute,
		logger:       logger,
		events:       newHub(),
	}
}

func (g *liveGateway) Session(ctx context.Context, token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(g.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	// A signed, unexpired token is still dead once revoked on sign-out.
	if _, err := g.tokens.FindByToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrSessionTokenNotFound) || errors.Is(err, repository.ErrSessionTokenRevoked) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to check session token: %w", err)
	}

	user, err := g.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}

	return &Session{Token: token, User: *user}, nil
}

func (g *liveGateway) SignIn(ctx context.Context, profileID, email, password string) (*Session, error) {
	user, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	sess, err := g.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	g.logger.Info("user signed in", zap.String("user_id", user.ID.String()))
	g.events.publish(Event{Type: EventSignedIn, Session: sess, ProfileID: profileID})
	return sess, nil
}

func (g *liveGateway) SignUp(ctx context.Context, profileID, email, password string, profile Profile) (*Session, error) {
	if _, err := g.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		FullName:       profile.FullName,
		Phone:          profile.Phone,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := g.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	sess, err := g.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	g.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	g.events.publish(Event{Type: EventSignedIn, Session: sess, ProfileID: profileID})
	return sess, nil
}

func (g *liveGateway) SignOut(ctx context.Context, profileID, token string) error {
	if err := g.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}

	g.events.publish(Event{Type: EventSignedOut, ProfileID: profileID})
	return nil
}

func (g *liveGateway) Subscribe(fn func(Event)) func() {
	return g.events.subscribe(fn)
}

func (g *liveGateway) newSession(ctx context.Context, user *domain.User) (*Session, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	record := &domain.SessionToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(g.accessExpiry),
		CreatedAt: now,
	}
	if err := g.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record session token: %w", err)
	}

	return &Session{Token: token, User: *user}, nil
}
