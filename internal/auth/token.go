package auth

import (
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/google/uuid"
)

const issuer = "nexskill"

type Kind string

const (
	KindJobSeeker Kind = "jobseeker"
	KindRecruiter Kind = "recruiter"
)

// Principal is the account a session token was issued to.
type Principal struct {
	Kind  Kind      `json:"kind"`
	ID    uuid.UUID `json:"-"`
	Email string    `json:"email"`
}

var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	Kind  Kind   `json:"kind"`
	Email string `json:"email"`
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	key    []byte
	ttl    time.Duration
	signer jose.Signer
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	key := []byte(secret)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("create token signer: %w", err)
	}
	return &TokenIssuer{key: key, ttl: ttl, signer: signer, now: time.Now}, nil
}

func (t *TokenIssuer) Issue(p Principal) (string, error) {
	now := t.now()
	registered := jwt.Claims{
		Issuer:   issuer,
		Subject:  p.ID.String(),
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.Signed(t.signer).
		Claims(registered).
		Claims(sessionClaims{Kind: p.Kind, Email: p.Email}).
		CompactSerialize()
}

func (t *TokenIssuer) Verify(raw string) (Principal, error) {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	if len(tok.Headers) != 1 || tok.Headers[0].Algorithm != string(jose.HS256) {
		return Principal{}, ErrInvalidToken
	}

	var (
		registered jwt.Claims
		session    sessionClaims
	)
	if err := tok.Claims(t.key, &registered, &session); err != nil {
		return Principal{}, ErrInvalidToken
	}
	if err := registered.Validate(jwt.Expected{Issuer: issuer, Time: t.now()}); err != nil {
		return Principal{}, ErrInvalidToken
	}

	id, err := uuid.Parse(registered.Subject)
	if err != nil || session.Email == "" {
		return Principal{}, ErrInvalidToken
	}
	switch session.Kind {
	case KindJobSeeker, KindRecruiter:
	default:
		return Principal{}, ErrInvalidToken
	}
	return Principal{Kind: session.Kind, ID: id, Email: session.Email}, nil
}
