package service

import (
	"errors"
	"fmt"
	"time"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenError is a verification failure. Every TokenError is also
// apperrors.ErrUnauthenticated under errors.Is.
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

func (e TokenError) Is(target error) bool {
	return target == apperrors.ErrUnauthenticated
}

const (
	ErrInvalidSignature = TokenError("invalid token signature")
	ErrMalformedToken   = TokenError("malformed token")
	ErrTokenExpired     = TokenError("token has expired")
)

// TokenClaims is what a verified token asserts. Kind is empty when the token
// carries no recognized kind.
type TokenClaims struct {
	ID   primitive.ObjectID
	Kind domain.Kind
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService interface {
	Issue(id primitive.ObjectID, kind domain.Kind) (string, error)
	Verify(token string) (TokenClaims, error)
}

// jwtClaims defines the structure of the JWT payload. The _id and role
// claims are what older tokens carried; they are read but never written.
type jwtClaims struct {
	ID       string `json:"id,omitempty"`
	Kind     string `json:"kind,omitempty"`
	LegacyID string `json:"_id,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewTokenService creates a token service. A zero expiration issues tokens
// without an exp claim, which then stay valid until the secret changes.
func NewTokenService(secret string, expiration time.Duration) TokenService {
	if secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	return &tokenService{secret: []byte(secret), expiration: expiration, now: time.Now}
}

// Issue signs {id, kind}. Without expiry the claim set is exactly those two
// fields, so the same inputs always give the same token.
func (s *tokenService) Issue(id primitive.ObjectID, kind domain.Kind) (string, error) {
	if id == primitive.NilObjectID {
		return "", errors.New("cannot issue token for empty id")
	}
	if _, ok := domain.ParseKind(string(kind)); !ok {
		return "", fmt.Errorf("cannot issue token for kind %q", kind)
	}

	claims := &jwtClaims{ID: id.Hex(), Kind: string(kind)}
	if s.expiration > 0 {
		now := s.now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenString string) (TokenClaims, error) {
	if tokenString == "" {
		return TokenClaims{}, ErrMalformedToken
	}

	claims := &jwtClaims{}
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return TokenClaims{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return TokenClaims{}, ErrTokenExpired
		default:
			return TokenClaims{}, ErrMalformedToken
		}
	}
	if !token.Valid {
		return TokenClaims{}, ErrMalformedToken
	}

	rawID := claims.ID
	if rawID == "" {
		rawID = claims.LegacyID
	}
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return TokenClaims{}, ErrMalformedToken
	}

	rawKind := claims.Kind
	if rawKind == "" {
		rawKind = claims.Role
	}
	kind, _ := domain.ParseKind(rawKind)

	return TokenClaims{ID: id, Kind: kind}, nil
}
