package services

import (
	"context"
	"errors"
	"shiftreport/internal/models"
	"shiftreport/internal/utils"
	"strings"
	"testing"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User
	lastUser *models.User
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = len(m.users) + 1
	m.users[user.Email] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.users[strings.ToLower(email)]
	return exists, nil
}

func (m *mockUserRepo) FindActiveAgents(_ context.Context) ([]*models.User, error) {
	var agents []*models.User
	for _, u := range m.users {
		if u.Active && !u.IsAdmin {
			agents = append(agents, u)
		}
	}
	return agents, nil
}

func (m *mockUserRepo) GetAllUsers(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserRepo) UpdateUserFields(_ context.Context, id int, input *models.UserInput) error {
	for _, u := range m.users {
		if u.ID == id {
			delete(m.users, u.Email)
			u.Email = input.Email
			u.Nickname = input.Nickname
			u.IsAdmin = input.IsAdmin
			u.IsNurse = input.IsNurse
			u.IsHCA = input.IsHCA
			u.Active = input.Active
			m.users[u.Email] = u
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockUserRepo) DeleteUserByID(_ context.Context, id int) error {
	for email, u := range m.users {
		if u.ID == id {
			delete(m.users, email)
			return nil
		}
	}
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	user := &models.User{
		Email:    "nurse@example.com",
		Nickname: "Nurse",
		IsNurse:  true,
		Active:   true,
	}

	err := service.RegisterUser(context.Background(), user, "Secret123!")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "Secret123!" {
		t.Fatal("пароль сохранён открытым текстом")
	}
}

func TestRegisterUser_EmptyEmail(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	err := service.RegisterUser(context.Background(), &models.User{Email: "   "}, "Secret123!")
	if !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("ожидался ErrEmailRequired, получено %v", err)
	}
	if repo.lastUser != nil {
		t.Fatal("пользователь без email не должен сохраняться")
	}
}

func TestUpdateUser(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	repo.users["old@example.com"] = &models.User{
		ID:      1,
		Email:   "old@example.com",
		IsNurse: true,
		Active:  true,
	}

	err := service.UpdateUser(context.Background(), 1, &models.UserInput{
		Email:    "  New@Example.com ",
		Nickname: "Renamed",
		IsHCA:    true,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}

	u, err := service.GetUserByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("пользователь пропал после обновления: %v", err)
	}
	if u.Email != "new@example.com" || u.Nickname != "Renamed" {
		t.Fatalf("поля не обновились: %q / %q", u.Email, u.Nickname)
	}
	if u.IsNurse || !u.IsHCA {
		t.Fatal("роли не обновились")
	}
}

func TestUpdateUser_EmptyEmail(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	repo.users["old@example.com"] = &models.User{ID: 1, Email: "old@example.com"}

	if err := service.UpdateUser(context.Background(), 1, &models.UserInput{Email: ""}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("ожидался ErrEmailRequired, получено %v", err)
	}
	if _, ok := repo.users["old@example.com"]; !ok {
		t.Fatal("учётка не должна меняться при пустом email")
	}
}

func TestDeleteUser(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	repo.users["nurse@example.com"] = &models.User{ID: 1, Email: "nurse@example.com"}

	if err := service.DeleteUser(context.Background(), 1); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("учётка не удалена")
	}
}

func TestLoginByEmail_Success(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("Secret123!")
	repo.users["nurse@example.com"] = &models.User{
		ID:           1,
		Email:        "nurse@example.com",
		PasswordHash: hashed,
		Active:       true,
	}

	user, err := service.LoginByEmail(context.Background(), "  Nurse@Example.com ", "Secret123!")
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("вошёл не тот пользователь: %d", user.ID)
	}
}

func TestLoginByEmail_WrongPassword(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("Secret123!")
	repo.users["nurse@example.com"] = &models.User{
		ID:           1,
		Email:        "nurse@example.com",
		PasswordHash: hashed,
	}

	if _, err := service.LoginByEmail(context.Background(), "nurse@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидался ErrInvalidCredentials, получено %v", err)
	}
}

func TestLoginByEmail_NoPasswordHash(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	// учётка только с QR-входом: пустой хеш не должен пускать по паролю
	repo.users["agent@example.com"] = &models.User{
		ID:    2,
		Email: "agent@example.com",
	}

	if _, err := service.LoginByEmail(context.Background(), "agent@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидался ErrInvalidCredentials, получено %v", err)
	}
}

func TestLoginAdmin_RejectsNonAdmin(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("Secret123!")
	repo.users["nurse@example.com"] = &models.User{
		ID:           1,
		Email:        "nurse@example.com",
		PasswordHash: hashed,
		IsNurse:      true,
	}

	if _, err := service.LoginAdmin(context.Background(), "nurse@example.com", "Secret123!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("не-админ не должен входить в админку, получено %v", err)
	}
}
