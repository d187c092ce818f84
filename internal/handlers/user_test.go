package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"shiftreport/internal/models"
	"shiftreport/internal/services"
	"strings"
	"testing"
)

// Мок-хранилище пользователей (заглушка)
type mockUserStore struct {
	users map[int]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int]*models.User)}
}

func (m *mockUserStore) CreateUser(_ context.Context, user *models.User) error {
	user.ID = len(m.users) + 1
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserStore) GetUserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserStore) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *mockUserStore) FindActiveAgents(_ context.Context) ([]*models.User, error) {
	var agents []*models.User
	for _, u := range m.users {
		if u.Active && !u.IsAdmin {
			agents = append(agents, u)
		}
	}
	return agents, nil
}

func (m *mockUserStore) GetAllUsers(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserStore) UpdateUserFields(_ context.Context, id int, input *models.UserInput) error {
	u, ok := m.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Email = input.Email
	u.Nickname = input.Nickname
	u.IsAdmin = input.IsAdmin
	u.IsNurse = input.IsNurse
	u.IsHCA = input.IsHCA
	u.Active = input.Active
	return nil
}

func (m *mockUserStore) DeleteUserByID(_ context.Context, id int) error {
	delete(m.users, id)
	return nil
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUserCreate_Success(t *testing.T) {
	store := newMockUserStore()
	handler := NewUserHandler(services.NewAuthService(store))

	rec := httptest.NewRecorder()
	handler.Create(rec, postForm("/users", url.Values{
		"email":    {"nurse@example.com"},
		"nickname": {"Nurse"},
		"password": {"Secret123!"},
		"is_nurse": {"on"},
		"active":   {"on"},
	}))

	if rec.Code != http.StatusFound {
		t.Fatalf("ожидался редирект 302, получено %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/users/1" {
		t.Fatalf("неверный редирект: %q", loc)
	}

	u := store.users[1]
	if u == nil || !u.IsNurse || !u.Active {
		t.Fatal("учётка не создана или роли не сохранены")
	}
	if u.PasswordHash == "" || u.PasswordHash == "Secret123!" {
		t.Fatal("пароль должен храниться хешем")
	}
}

func TestUserCreate_MissingEmail(t *testing.T) {
	store := newMockUserStore()
	handler := NewUserHandler(services.NewAuthService(store))

	rec := httptest.NewRecorder()
	handler.Create(rec, postForm("/users", url.Values{"nickname": {"Nurse"}}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("ожидался 422, получено %d", rec.Code)
	}
	if len(store.users) != 0 {
		t.Fatal("учётка без email не должна создаваться")
	}
	if !strings.Contains(rec.Body.String(), services.ErrEmailRequired.Error()) {
		t.Fatal("форма должна показать ошибку валидации")
	}
}

func TestUsersIndex_ListsAccounts(t *testing.T) {
	store := newMockUserStore()
	store.users[1] = &models.User{ID: 1, Email: "nurse@example.com", Nickname: "Nurse", IsNurse: true, Active: true}
	handler := NewUserHandler(services.NewAuthService(store))

	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "nurse@example.com") {
		t.Fatal("список должен содержать email учётки")
	}
}
