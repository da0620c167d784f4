package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

type fakeStore struct {
	users []models.User
}

func (f *fakeStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeStore) CreateUser(ctx context.Context, user models.User) (string, error) {
	user.ID = "u1"
	f.users = append(f.users, user)
	return user.ID, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeStore) UsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, user models.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeStore) DeleteUser(ctx context.Context, id string) error { return nil }

func seededStore(t *testing.T) *fakeStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return &fakeStore{users: []models.User{{
		ID:           "u1",
		Name:         "Pedro",
		Email:        "pedro@hotel.test",
		PasswordHash: string(hash),
		Role:         models.RoleReceptionist,
		Active:       true,
	}}}
}

func TestLogin(t *testing.T) {
	t.Run("success returns the permission set", func(t *testing.T) {
		svc := NewService(seededStore(t), nil)
		user, perms, err := svc.Login(context.Background(), "PEDRO@hotel.test", "clave-segura")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if user.Name != "Pedro" {
			t.Errorf("Name = %q, want Pedro", user.Name)
		}
		found := false
		for _, p := range perms {
			if p == models.PermManageCash {
				found = true
			}
		}
		if !found {
			t.Error("receptionist permissions missing manage_caja")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewService(seededStore(t), nil)
		if _, _, err := svc.Login(context.Background(), "pedro@hotel.test", "adivinanza"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		svc := NewService(seededStore(t), nil)
		if _, _, err := svc.Login(context.Background(), "nadie@hotel.test", "x"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		store := seededStore(t)
		store.users[0].Active = false
		svc := NewService(store, nil)
		if _, _, err := svc.Login(context.Background(), "pedro@hotel.test", "clave-segura"); !errors.Is(err, ErrInactiveAccount) {
			t.Fatalf("err = %v, want ErrInactiveAccount", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewService(seededStore(t), nil)
		if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})
}

func TestCreateUser(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	user, err := svc.CreateUser(context.Background(), UserInput{
		Name:     "Marta",
		Email:    "Marta@Hotel.Test",
		Password: "otra-clave",
		Role:     "receptionist",
		Active:   true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "marta@hotel.test" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "otra-clave" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("otra-clave")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if _, err := svc.CreateUser(context.Background(), UserInput{Name: "X", Email: "x@y.z", Password: "p", Role: "wizard"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateUser(context.Background(), UserInput{Email: "x@y.z", Password: "p", Role: "admin"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing name err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateUserKeepsHashOnEmptyPassword(t *testing.T) {
	store := seededStore(t)
	originalHash := store.users[0].PasswordHash
	svc := NewService(store, nil)

	updated, err := svc.UpdateUser(context.Background(), "u1", UserInput{
		Name:   "Pedro Gómez",
		Role:   "manager",
		Active: true,
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.PasswordHash != originalHash {
		t.Error("empty password replaced the stored hash")
	}
	if updated.Role != models.RoleManager {
		t.Errorf("Role = %q, want manager", updated.Role)
	}

	if _, err := svc.UpdateUser(context.Background(), "missing", UserInput{Name: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown id err = %v, want ErrInvalidInput", err)
	}
}

func TestListUsersRoleFilter(t *testing.T) {
	store := seededStore(t)
	store.users = append(store.users, models.User{ID: "u2", Name: "Ana", Email: "ana@hotel.test", Role: models.RoleAdmin})
	svc := NewService(store, nil)

	all, err := svc.ListUsers(context.Background(), "")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	admins, err := svc.ListUsers(context.Background(), "admin")
	if err != nil {
		t.Fatalf("ListUsers(admin): %v", err)
	}
	if len(admins) != 1 || admins[0].Name != "Ana" {
		t.Errorf("admins = %+v, want just Ana", admins)
	}

	if _, err := svc.ListUsers(context.Background(), "wizard"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role err = %v, want ErrInvalidInput", err)
	}
}
