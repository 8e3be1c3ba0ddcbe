package domain

import "time"

// AccessToken bearer-токен PMS
type AccessToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewAccessToken создает токен с учетом запаса TokenExpirySkew.
// Срок действия не может быть меньше нуля: при expiresIn <= 5s токен сразу считается истекшим.
func NewAccessToken(value string, issuedAt time.Time, expiresIn time.Duration) AccessToken {
	lifetime := expiresIn - TokenExpirySkew
	if lifetime < 0 {
		lifetime = 0
	}

	return AccessToken{
		Value:     value,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(lifetime),
	}
}

// IsValid returns true if the token can still be used at the given moment
func (t AccessToken) IsValid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}
