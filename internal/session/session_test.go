package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/cineflixx/cfx/internal/storage"
)

func newReadyStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()

	kv := storage.NewMemoryKV()
	store := NewStore(kv, nil)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	return store, kv
}

func movie(id int, title string) models.Movie {
	return models.Movie{ID: id, Title: title, VoteAverage: 7.0, ReleaseDate: "2024-01-01", Overview: "test"}
}

// brokenReadKV delegates to the wrapped KV but fails reads of one key.
type brokenReadKV struct {
	storage.KV
	failKey string
}

func (b brokenReadKV) Get(key string) (string, bool, error) {
	if key == b.failKey {
		return "", false, errors.New("storage read failed")
	}
	return b.KV.Get(key)
}

func TestInit(t *testing.T) {
	t.Run("Fresh Storage Resolves Anonymous", func(t *testing.T) {
		store := NewStore(storage.NewMemoryKV(), nil)

		if store.State() != Unresolved {
			t.Fatalf("expected unresolved before init, got %s", store.State())
		}

		if err := store.Init(); err != nil {
			t.Fatalf("init failed: %v", err)
		}

		if store.State() != Anonymous {
			t.Errorf("expected anonymous after init, got %s", store.State())
		}
	})

	t.Run("Stored Identity Resolves Authenticated", func(t *testing.T) {
		kv := storage.NewMemoryKV()

		identity := models.Identity{Name: "Ada", Email: "ada@example.com", Token: "tok"}
		raw, _ := json.Marshal(identity)
		kv.Set(identityKey, string(raw))

		favs, _ := json.Marshal([]models.Movie{movie(7, "Stored")})
		kv.Set(favoritesKey("ada@example.com"), string(favs))

		store := NewStore(kv, nil)
		if err := store.Init(); err != nil {
			t.Fatalf("init failed: %v", err)
		}

		if store.State() != Authenticated {
			t.Fatalf("expected authenticated, got %s", store.State())
		}

		got, ok := store.Identity()
		if !ok || got.Email != "ada@example.com" {
			t.Errorf("unexpected identity: %+v (ok=%v)", got, ok)
		}

		if !store.IsFavorite(7) {
			t.Error("expected stored favorites to be loaded on init")
		}
	})

	t.Run("Unparseable Identity Resolves Anonymous", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		kv.Set(identityKey, "{not json")

		store := NewStore(kv, nil)
		if err := store.Init(); err != nil {
			t.Fatalf("init failed: %v", err)
		}

		if store.State() != Anonymous {
			t.Errorf("expected anonymous for unparseable record, got %s", store.State())
		}

		if _, ok, _ := kv.Get(identityKey); ok {
			t.Error("expected stale identity record to be discarded")
		}
	})

	t.Run("Operations Before Init Are Rejected", func(t *testing.T) {
		store := NewStore(storage.NewMemoryKV(), nil)

		if err := store.Login("a@b.c", "pw"); !errors.Is(err, shared.ErrSessionUnresolved) {
			t.Errorf("expected ErrSessionUnresolved, got %v", err)
		}

		if err := store.AddFavorite(movie(1, "Early")); !errors.Is(err, shared.ErrSessionUnresolved) {
			t.Errorf("expected ErrSessionUnresolved, got %v", err)
		}
	})

	t.Run("Init Is Idempotent", func(t *testing.T) {
		store, _ := newReadyStore(t)

		if err := store.Register("Ada", "ada@example.com", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		if err := store.Init(); err != nil {
			t.Fatalf("second init failed: %v", err)
		}

		if store.State() != Authenticated {
			t.Error("second init should not reset resolved state")
		}
	})
}

func TestRegister(t *testing.T) {
	t.Run("Success Signs In", func(t *testing.T) {
		store, kv := newReadyStore(t)

		if err := store.Register("Ada", "ada@example.com", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		if store.State() != Authenticated {
			t.Errorf("expected authenticated, got %s", store.State())
		}

		identity, ok := store.Identity()
		if !ok {
			t.Fatal("expected identity to be present")
		}
		if identity.Token == "" {
			t.Error("expected a generated token")
		}

		if _, ok, _ := kv.Get(identityKey); !ok {
			t.Error("expected identity record to be persisted")
		}
	})

	t.Run("Identity Never Carries Password", func(t *testing.T) {
		store, kv := newReadyStore(t)

		if err := store.Register("Ada", "ada@example.com", "hunter2"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		raw, _, _ := kv.Get(identityKey)

		var fields map[string]any
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			t.Fatalf("identity record should be JSON: %v", err)
		}

		if _, present := fields["password"]; present {
			t.Error("persisted identity must not contain a password field")
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		store, kv := newReadyStore(t)

		if err := store.Register("Ada", "ada@example.com", "first"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		before, _, _ := kv.Get(credentialsKey)

		err := store.Register("Imposter", "ada@example.com", "second")
		if !errors.Is(err, shared.ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}

		after, _, _ := kv.Get(credentialsKey)
		if before != after {
			t.Error("failed registration must not alter the existing credential record")
		}
	})

	t.Run("Invalid Email", func(t *testing.T) {
		store, _ := newReadyStore(t)

		if err := store.Register("Ada", "not-an-email", "pw"); err == nil {
			t.Error("expected error for malformed email")
		}
	})

	t.Run("Credential Read Failure Aborts Without Overwrite", func(t *testing.T) {
		kv := storage.NewMemoryKV()

		seeded, _ := json.Marshal(map[string]models.Credential{
			"ada@example.com": {Name: "Ada", Email: "ada@example.com", Password: "pw", Token: "tok"},
		})
		kv.Set(credentialsKey, string(seeded))

		store := NewStore(brokenReadKV{KV: kv, failKey: credentialsKey}, nil)
		if err := store.Init(); err != nil {
			t.Fatalf("failed to init store: %v", err)
		}

		if err := store.Register("Eve", "eve@example.com", "pw"); err == nil {
			t.Fatal("expected register to fail when credentials cannot be read")
		}

		if err := store.Login("eve@example.com", "pw"); err == nil {
			t.Fatal("expected login to fail when credentials cannot be read")
		}

		raw, _, _ := kv.Get(credentialsKey)
		if raw != string(seeded) {
			t.Error("a failed credential read must not overwrite the stored map")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, _ := newReadyStore(t)

		if err := store.Register("Ada", "ada@example.com", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		store.Logout()

		if err := store.Login("ada@example.com", "pw"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if store.State() != Authenticated {
			t.Errorf("expected authenticated, got %s", store.State())
		}
	})

	t.Run("Wrong Password And Unknown Email Are Indistinguishable", func(t *testing.T) {
		store, _ := newReadyStore(t)

		if err := store.Register("Ada", "ada@example.com", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		store.Logout()

		wrongPassword := store.Login("ada@example.com", "nope")
		unknownEmail := store.Login("ghost@example.com", "pw")

		if !errors.Is(wrongPassword, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
		}
		if !errors.Is(unknownEmail, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
		}

		if wrongPassword.Error() != unknownEmail.Error() {
			t.Error("both failure cases must produce identical message text")
		}
	})
}

func TestLogout(t *testing.T) {
	store, kv := newReadyStore(t)

	if err := store.Register("Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := store.AddFavorite(movie(1, "Kept")); err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}

	store.Logout()

	if store.State() != Anonymous {
		t.Errorf("expected anonymous after logout, got %s", store.State())
	}
	if len(store.Favorites()) != 0 {
		t.Error("expected in-memory favorites cleared on logout")
	}
	if _, ok, _ := kv.Get(identityKey); ok {
		t.Error("expected identity record removed on logout")
	}

	// Durable favorites and credentials survive for the next login.
	if _, ok, _ := kv.Get(favoritesKey("ada@example.com")); !ok {
		t.Error("expected per-user favorites to survive logout")
	}
	if _, ok, _ := kv.Get(credentialsKey); !ok {
		t.Error("expected credential map to survive logout")
	}

	if err := store.Login("ada@example.com", "pw"); err != nil {
		t.Fatalf("re-login failed: %v", err)
	}
	if !store.IsFavorite(1) {
		t.Error("expected favorites reloaded after re-login")
	}
}

func TestFavorites(t *testing.T) {
	t.Run("Add Remove Set Semantics", func(t *testing.T) {
		store, _ := newReadyStore(t)
		if err := store.Register("Ada", "ada@example.com", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		store.AddFavorite(movie(1, "One"))
		store.AddFavorite(movie(2, "Two"))
		store.AddFavorite(movie(3, "Three"))
		store.RemoveFavorite(2)
		store.AddFavorite(movie(4, "Four"))

		favorites := store.Favorites()
		want := []int{1, 3, 4}
		if len(favorites) != len(want) {
			t.Fatalf("expected %d favorites, got %d", len(want), len(favorites))
		}
		for i, id := range want {
			if favorites[i].ID != id {
				t.Errorf("position %d: expected id %d, got %d", i, id, favorites[i].ID)
			}
		}
	})

	t.Run("Add Is Idempotent", func(t *testing.T) {
		store, _ := newReadyStore(t)
		store.Register("Ada", "ada@example.com", "pw")

		store.AddFavorite(movie(1, "One"))
		store.AddFavorite(movie(1, "One"))

		if len(store.Favorites()) != 1 {
			t.Errorf("expected 1 favorite after duplicate add, got %d", len(store.Favorites()))
		}
	})

	t.Run("Remove Absent Is NoOp", func(t *testing.T) {
		store, _ := newReadyStore(t)
		store.Register("Ada", "ada@example.com", "pw")
		store.AddFavorite(movie(1, "One"))

		if err := store.RemoveFavorite(99); err != nil {
			t.Fatalf("remove of absent id should be a no-op, got %v", err)
		}

		if len(store.Favorites()) != 1 {
			t.Errorf("expected list unchanged, got %d entries", len(store.Favorites()))
		}
	})

	t.Run("Write Through Round Trip", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		store := NewStore(kv, nil)
		store.Init()
		store.Register("Ada", "ada@example.com", "pw")

		m := movie(42, "Round Trip")
		m.Overview = "full overview"
		store.AddFavorite(m)

		// A second store over the same storage sees the same list.
		other := NewStore(kv, nil)
		other.Init()

		favorites := other.Favorites()
		if len(favorites) != 1 {
			t.Fatalf("expected 1 favorite after reload, got %d", len(favorites))
		}
		if favorites[0].ID != 42 || favorites[0].Overview != "full overview" {
			t.Errorf("reloaded favorite lost fields: %+v", favorites[0])
		}
	})

	t.Run("Anonymous Mutations Are Never Persisted", func(t *testing.T) {
		store, kv := newReadyStore(t)

		store.AddFavorite(movie(1, "Ghost"))

		if !store.IsFavorite(1) {
			t.Error("anonymous add should apply in memory")
		}

		if _, ok, _ := kv.Get(favoritesKey("")); ok {
			t.Error("anonymous favorites must not reach storage")
		}
	})

	t.Run("Unparseable Favorites Treated As Empty", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		kv.Set(favoritesKey("ada@example.com"), "{corrupt")

		store := NewStore(kv, nil)
		store.Init()
		store.Register("Ada", "ada@example.com", "pw")

		if len(store.Favorites()) != 0 {
			t.Error("corrupt favorites record should load as empty list")
		}
	})
}

func TestIdentitySwitch(t *testing.T) {
	store, kv := newReadyStore(t)

	if err := store.Register("Ada", "a@example.com", "pw"); err != nil {
		t.Fatalf("register A failed: %v", err)
	}
	store.AddFavorite(movie(1, "A's"))
	store.Logout()

	if err := store.Register("Bob", "b@example.com", "pw"); err != nil {
		t.Fatalf("register B failed: %v", err)
	}

	if store.IsFavorite(1) {
		t.Error("B must not see A's favorites")
	}

	store.AddFavorite(movie(2, "B's"))

	// B's mutation must land under B's key and leave A's untouched.
	rawA, _, _ := kv.Get(favoritesKey("a@example.com"))
	var aFavs []models.Movie
	json.Unmarshal([]byte(rawA), &aFavs)
	if len(aFavs) != 1 || aFavs[0].ID != 1 {
		t.Errorf("A's stored favorites corrupted: %+v", aFavs)
	}

	rawB, _, _ := kv.Get(favoritesKey("b@example.com"))
	var bFavs []models.Movie
	json.Unmarshal([]byte(rawB), &bFavs)
	if len(bFavs) != 1 || bFavs[0].ID != 2 {
		t.Errorf("B's stored favorites wrong: %+v", bFavs)
	}

	store.Logout()
	if err := store.Login("a@example.com", "pw"); err != nil {
		t.Fatalf("login A failed: %v", err)
	}

	if !store.IsFavorite(1) || store.IsFavorite(2) {
		t.Error("A should see exactly A's favorites after switching back")
	}
}
