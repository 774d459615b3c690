package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"togetherbikes/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memoryGateway keeps accounts and sessions in process memory. It is wired
// in when no backend is configured so the rest of the system keeps working
// for demos and tests.
type memoryGateway struct {
	mu       sync.Mutex
	accounts map[string]*domain.User // keyed by email
	tokens   map[string]uuid.UUID
	logger   *zap.Logger
	events   *hub
}

// NewMemoryGateway creates the mock-mode identity gateway
func NewMemoryGateway(logger *zap.Logger) Gateway {
	return &memoryGateway{
		accounts: make(map[string]*domain.User),
		tokens:   make(map[string]uuid.UUID),
		logger:   logger,
		events:   newHub(),
	}
}

func (g *memoryGateway) Session(ctx context.Context, token string) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	userID, ok := g.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	for _, user := range g.accounts {
		if user.ID == userID {
			u := *user
			return &Session{Token: token, User: u}, nil
		}
	}
	return nil, ErrInvalidToken
}

func (g *memoryGateway) SignIn(ctx context.Context, profileID, email, password string) (*Session, error) {
	g.mu.Lock()
	user, ok := g.accounts[email]
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		g.mu.Unlock()
		return nil, ErrInvalidCredentials
	}
	sess := g.newSessionLocked(user)
	g.mu.Unlock()

	g.events.publish(Event{Type: EventSignedIn, Session: sess, ProfileID: profileID})
	return sess, nil
}

func (g *memoryGateway) SignUp(ctx context.Context, profileID, email, password string, profile Profile) (*Session, error) {
	g.mu.Lock()
	if _, exists := g.accounts[email]; exists {
		g.mu.Unlock()
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		g.mu.Unlock()
		return nil, err
	}

	fullName := profile.FullName
	if fullName == "" {
		fullName = strings.SplitN(email, "@", 2)[0]
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hash),
		FullName:       fullName,
		Phone:          profile.Phone,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	g.accounts[email] = user
	sess := g.newSessionLocked(user)
	g.mu.Unlock()

	g.events.publish(Event{Type: EventSignedIn, Session: sess, ProfileID: profileID})
	return sess, nil
}

func (g *memoryGateway) SignOut(ctx context.Context, profileID, token string) error {
	g.mu.Lock()
	delete(g.tokens, token)
	g.mu.Unlock()

	g.events.publish(Event{Type: EventSignedOut, ProfileID: profileID})
	return nil
}

func (g *memoryGateway) Subscribe(fn func(Event)) func() {
	return g.events.subscribe(fn)
}

func (g *memoryGateway) newSessionLocked(user *domain.User) *Session {
	token := "mock-token-" + uuid.NewString()
	g.tokens[token] = user.ID
	u := *user
	return &Session{Token: token, User: u}
}
