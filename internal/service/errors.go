package service

import "errors"

var (
	// ErrNoFamily - пользователь не состоит ни в одной семье
	ErrNoFamily = errors.New("user has no family")
	// ErrNoIdentity - нет идентификатора пользователя, сторож неактивен
	ErrNoIdentity = errors.New("user identity is missing")
)
