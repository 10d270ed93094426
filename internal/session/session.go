// package session implements the session and favorites store.
//
// The Store owns the current identity, its lifecycle (unresolved → anonymous
// or authenticated), and the signed-in user's favorites list. Durable state
// lives behind a [storage.KV]; the store is the only writer of its keys.
// Favorites are written through on every mutation so memory and storage never
// diverge past the mutating call.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/cineflixx/cfx/internal/storage"
)

// Storage keys. The favorites key is derived per user so two accounts never
// read each other's list.
const (
	identityKey        = "cfx_user"
	credentialsKey     = "cfx_credentials"
	favoritesKeyPrefix = "cfx_favorites_"
)

// State enumerates the three identity states.
//
// Unresolved means durable storage has not been consulted yet; consumers must
// not treat it as "logged out", or a signed-in user gets bounced to the login
// screen during startup.
type State int

const (
	Unresolved State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store holds session and favorites state and mediates all mutations.
type Store struct {
	mu     sync.RWMutex
	kv     storage.KV
	logger *log.Logger

	state           State
	identity        models.Identity
	favorites       []models.Movie
	lastLoadedEmail string
}

// NewStore creates a Store in the Unresolved state.
//
// Call [Store.Init] before any other operation.
func NewStore(kv storage.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Store{
		kv:     kv,
		logger: logger,
		state:  Unresolved,
	}
}

// Init resolves the identity state from durable storage.
//
// A present, parseable identity record resolves to Authenticated and loads
// that user's favorites; a present but unparseable record is discarded and
// resolves to Anonymous; an absent record resolves to Anonymous. Runs once;
// repeated calls are no-ops.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Unresolved {
		return nil
	}

	raw, ok, err := s.kv.Get(identityKey)
	if err != nil {
		return fmt.Errorf("failed to read identity record: %w", err)
	}

	if !ok {
		s.state = Anonymous
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.Validate() != nil {
		// Unparseable records are treated as absent, never as a fatal error.
		s.logger.Warn("discarding unparseable identity record")
		if err := s.kv.Delete(identityKey); err != nil {
			s.logger.Error("failed to remove stale identity record", "err", err)
		}
		s.state = Anonymous
		return nil
	}

	s.state = Authenticated
	s.identity = identity
	s.favorites = s.loadFavorites(identity.Email)
	s.lastLoadedEmail = identity.Email

	return nil
}

// State returns the current identity state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Identity returns the current identity. The bool is false unless the state
// is Authenticated.
func (s *Store) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.identity, s.state == Authenticated
}

// Register creates a new credential record and signs the user in.
//
// Email is the uniqueness key (exact string match). Returns
// [shared.ErrAlreadyRegistered] without any state change if a record for the
// email already exists.
func (s *Store) Register(name, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return err
	}

	identity := models.Identity{Name: name, Email: email}
	if err := identity.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	credentials, err := s.loadCredentials()
	if err != nil {
		return err
	}
	if _, exists := credentials[email]; exists {
		return shared.ErrAlreadyRegistered
	}

	record := models.Credential{
		Name:     name,
		Email:    email,
		Password: password,
		Token:    shared.GenerateID(),
	}
	credentials[email] = record

	if err := s.saveCredentials(credentials); err != nil {
		return err
	}

	return s.setIdentity(record.Identity())
}

// Login validates the email/password pair against the stored credential map
// and signs the user in.
//
// An unknown email and a wrong password both return
// [shared.ErrInvalidCredentials]; the caller cannot tell which case occurred.
func (s *Store) Login(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return err
	}

	credentials, err := s.loadCredentials()
	if err != nil {
		return err
	}

	record, ok := credentials[email]
	if !ok || record.Password != password {
		return shared.ErrInvalidCredentials
	}

	return s.setIdentity(record.Identity())
}

// Logout transitions to Anonymous and clears the in-memory favorites list.
//
// Only the active session pointer is removed from storage; the credential map
// and the per-user favorites keys survive for the next login. Always
// succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unresolved {
		s.state = Anonymous
		return
	}

	s.state = Anonymous
	s.identity = models.Identity{}
	s.favorites = nil
	s.lastLoadedEmail = ""

	if err := s.kv.Delete(identityKey); err != nil {
		s.logger.Error("failed to remove identity record on logout", "err", err)
	}
}

// AddFavorite appends the movie to the favorites list.
//
// A no-op if the id is already present. While Anonymous the mutation is held
// in memory only and never persisted.
func (s *Store) AddFavorite(movie models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return err
	}

	for _, f := range s.favorites {
		if f.ID == movie.ID {
			return nil
		}
	}

	s.favorites = append(s.favorites, movie)
	return s.persistFavorites()
}

// RemoveFavorite removes the movie with the given id from the favorites list.
//
// A no-op if the id is absent.
func (s *Store) RemoveFavorite(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return err
	}

	kept := s.favorites[:0]
	removed := false
	for _, f := range s.favorites {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}

	if !removed {
		return nil
	}

	s.favorites = kept
	return s.persistFavorites()
}

// IsFavorite reports whether the id is in the favorites list. Pure lookup.
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.favorites {
		if f.ID == id {
			return true
		}
	}

	return false
}

// Favorites returns a copy of the favorites list in insertion order.
func (s *Store) Favorites() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movie, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// ensureReady rejects operations attempted before Init has resolved the
// state. Callers hold s.mu.
func (s *Store) ensureReady() error {
	if s.state == Unresolved {
		return shared.ErrSessionUnresolved
	}
	return nil
}

// setIdentity installs a new authenticated identity, reconciling the
// favorites list before any mutation can run under the new user. Persists the
// identity record. Callers hold s.mu.
func (s *Store) setIdentity(identity models.Identity) error {
	s.state = Authenticated
	s.identity = identity

	if identity.Email != s.lastLoadedEmail {
		s.favorites = s.loadFavorites(identity.Email)
		s.lastLoadedEmail = identity.Email
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to serialize identity: %w", err)
	}

	if err := s.kv.Set(identityKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}

	return nil
}

// persistFavorites writes the full favorites list under the current user's
// key. While Anonymous nothing is written. Callers hold s.mu.
func (s *Store) persistFavorites() error {
	if s.state != Authenticated {
		return nil
	}

	raw, err := json.Marshal(s.favorites)
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}

	if err := s.kv.Set(favoritesKey(s.identity.Email), string(raw)); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}

	return nil
}

// loadFavorites reads the favorites list for email; an absent or unparseable
// value yields an empty list. Callers hold s.mu.
func (s *Store) loadFavorites(email string) []models.Movie {
	raw, ok, err := s.kv.Get(favoritesKey(email))
	if err != nil {
		s.logger.Error("failed to read favorites", "email", email, "err", err)
		return []models.Movie{}
	}
	if !ok {
		return []models.Movie{}
	}

	var favorites []models.Movie
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		s.logger.Warn("discarding unparseable favorites record", "email", email)
		return []models.Movie{}
	}

	return favorites
}

// loadCredentials reads the email→credential map. An absent or unparseable
// value yields an empty map; a storage read failure is an error, since
// proceeding with an empty map would let a later save overwrite every stored
// account. The map never leaves this package. Callers hold s.mu.
func (s *Store) loadCredentials() (map[string]models.Credential, error) {
	raw, ok, err := s.kv.Get(credentialsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	if !ok {
		return map[string]models.Credential{}, nil
	}

	var credentials map[string]models.Credential
	if err := json.Unmarshal([]byte(raw), &credentials); err != nil {
		s.logger.Warn("discarding unparseable credential map")
		return map[string]models.Credential{}, nil
	}

	return credentials, nil
}

func (s *Store) saveCredentials(credentials map[string]models.Credential) error {
	raw, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	if err := s.kv.Set(credentialsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}

	return nil
}

func favoritesKey(email string) string {
	return favoritesKeyPrefix + email
}
