package services

import (
	"context"
	"encoding/hex"
	"errors"
	"shiftreport/internal/models"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Мок-репозиторий: хранит токены в памяти и повторяет атомарность БД —
// выдача и гашение выполняются целиком под одним мьютексом.
type mockTokenRepo struct {
	mu       sync.Mutex
	users    map[int]bool
	tokens   map[string]tokenEntry
	consumes int // сколько раз сервис ходил в "хранилище" за гашением
}

type tokenEntry struct {
	userID   int
	issuedAt time.Time
}

func newMockTokenRepo(userIDs ...int) *mockTokenRepo {
	users := make(map[int]bool)
	for _, id := range userIDs {
		users[id] = true
	}
	return &mockTokenRepo{users: users, tokens: make(map[string]tokenEntry)}
}

func (m *mockTokenRepo) SetLoginToken(_ context.Context, userID int, token string, issuedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.users[userID] {
		return pgx.ErrNoRows
	}
	// у пользователя может быть не больше одного токена
	for t, e := range m.tokens {
		if e.userID == userID {
			delete(m.tokens, t)
		}
	}
	m.tokens[token] = tokenEntry{userID: userID, issuedAt: issuedAt}
	return nil
}

func (m *mockTokenRepo) ConsumeLoginToken(_ context.Context, token string, issuedAfter time.Time) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consumes++
	e, ok := m.tokens[token]
	if !ok || !e.issuedAt.After(issuedAfter) {
		return nil, pgx.ErrNoRows
	}
	delete(m.tokens, token)
	return &models.User{ID: e.userID}, nil
}

func (m *mockTokenRepo) outstanding(userID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.tokens {
		if e.userID == userID {
			n++
		}
	}
	return n
}

func TestIssueConsume_Roundtrip(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	token, err := service.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка выдачи токена: %v", err)
	}
	if len(token) != 32 {
		t.Fatalf("ожидался токен из 32 hex-символов, получено %q", token)
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("токен не является hex-строкой: %q", token)
	}

	user, err := service.Consume(context.Background(), token)
	if err != nil {
		t.Fatalf("ошибка гашения токена: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("токен погашен не тем пользователем: %d", user.ID)
	}
	if repo.outstanding(1) != 0 {
		t.Fatal("после гашения токен должен быть сброшен")
	}
}

func TestConsume_SecondCallNoMatch(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	token, err := service.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка выдачи токена: %v", err)
	}

	if _, err := service.Consume(context.Background(), token); err != nil {
		t.Fatalf("первое гашение должно пройти: %v", err)
	}
	if _, err := service.Consume(context.Background(), token); !errors.Is(err, ErrTokenNoMatch) {
		t.Fatalf("повторное гашение должно дать ErrTokenNoMatch, получено %v", err)
	}
}

func TestIssue_OverwritesPreviousToken(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	t1, err := service.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка выдачи первого токена: %v", err)
	}
	t2, err := service.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка выдачи второго токена: %v", err)
	}
	if t1 == t2 {
		t.Fatal("повторная выдача вернула тот же токен")
	}
	if repo.outstanding(1) != 1 {
		t.Fatalf("у пользователя должен быть ровно один токен, есть %d", repo.outstanding(1))
	}

	if _, err := service.Consume(context.Background(), t1); !errors.Is(err, ErrTokenNoMatch) {
		t.Fatalf("старый токен должен быть аннулирован, получено %v", err)
	}
	user, err := service.Consume(context.Background(), t2)
	if err != nil {
		t.Fatalf("новый токен должен гаситься: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("новый токен погашен не тем пользователем: %d", user.ID)
	}
}

func TestConsume_EmptyTokenSkipsStore(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	for _, token := range []string{"", "   "} {
		if _, err := service.Consume(context.Background(), token); !errors.Is(err, ErrTokenNoMatch) {
			t.Fatalf("пустой токен %q должен дать ErrTokenNoMatch, получено %v", token, err)
		}
	}
	if repo.consumes != 0 {
		t.Fatalf("пустой токен не должен доходить до хранилища, обращений: %d", repo.consumes)
	}
}

func TestConsume_Concurrent(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	token, err := service.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка выдачи токена: %v", err)
	}

	const callers = 32
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Consume(context.Background(), token)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	matches, misses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			matches++
		case errors.Is(err, ErrTokenNoMatch):
			misses++
		default:
			t.Fatalf("неожиданная ошибка при конкурентном гашении: %v", err)
		}
	}
	if matches != 1 {
		t.Fatalf("токен должен сработать ровно один раз, сработал %d", matches)
	}
	if misses != callers-1 {
		t.Fatalf("остальные вызовы должны получить ErrTokenNoMatch, получили %d из %d", misses, callers-1)
	}
}

func TestIssue_UnknownUser(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	if _, err := service.Issue(context.Background(), 42); !errors.Is(err, ErrTokenUserNotFound) {
		t.Fatalf("ожидался ErrTokenUserNotFound, получено %v", err)
	}
	if len(repo.tokens) != 0 {
		t.Fatal("неудачная выдача не должна менять хранилище")
	}
}

func TestConsume_ExpiredToken(t *testing.T) {
	repo := newMockTokenRepo(1)
	service := NewLoginTokenService(repo, 15*time.Minute)

	// токен, выданный час назад, при окне в 15 минут уже не действует
	repo.tokens["deadbeefdeadbeefdeadbeefdeadbeef"] = tokenEntry{
		userID:   1,
		issuedAt: time.Now().Add(-time.Hour),
	}

	if _, err := service.Consume(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef"); !errors.Is(err, ErrTokenNoMatch) {
		t.Fatalf("истёкший токен должен дать ErrTokenNoMatch, получено %v", err)
	}
}
