package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if hash == "Secret123!" {
		t.Fatal("хеш совпадает с паролем")
	}

	if !CheckPasswordHash("Secret123!", hash) {
		t.Fatal("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("неверный пароль прошёл проверку")
	}
}

func TestCheckPasswordHash_EmptyHash(t *testing.T) {
	// учётка без пароля (вход только по QR) не должна пускать никакой пароль
	if CheckPasswordHash("", "") {
		t.Fatal("пустой хеш не должен пропускать пустой пароль")
	}
	if CheckPasswordHash("anything", "") {
		t.Fatal("пустой хеш не должен пропускать пароль")
	}
}
