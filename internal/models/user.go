package models

import "time"

// User — учётная запись сотрудника. LoginToken и LoginTokenIssuedAt
// выставляются и сбрасываются только парой: либо оба NULL, либо оба заданы.
type User struct {
	ID                 int        `json:"id"`
	Email              string     `json:"email"`
	Nickname           string     `json:"nickname"`
	PasswordHash       string     `json:"-"`
	IsAdmin            bool       `json:"is_admin"`
	IsNurse            bool       `json:"is_nurse"`
	IsHCA              bool       `json:"is_hca"`
	Active             bool       `json:"active"`
	LoginToken         *string    `json:"-"`
	LoginTokenIssuedAt *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// UserInput — сырые значения формы создания/редактирования учётки.
// Password учитывается только при создании; пустой пароль означает
// учётку со входом только по QR.
type UserInput struct {
	Email    string
	Nickname string
	Password string
	IsAdmin  bool
	IsNurse  bool
	IsHCA    bool
	Active   bool
}
