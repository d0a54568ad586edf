package service

import (
	"errors"
	"fitu/dashboard/internal/domain"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// AuthService issues and verifies the HS256 session tokens carried as
// bearer tokens. The account kind is never trusted from the token; it is
// derived from the email.
type AuthService interface {
	IssueToken(sess domain.Session) (string, error)
	ParseToken(tokenString string) (domain.Session, error)
}

type authService struct {
	jwtSecret        string
	issuer           string
	jwtExpiration    time.Duration
	instructorDomain string
	now              func() time.Time
}

func NewAuthService(jwtSecret, issuer string, jwtExpiration time.Duration, instructorDomain string) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		jwtSecret:        jwtSecret,
		issuer:           issuer,
		jwtExpiration:    jwtExpiration,
		instructorDomain: instructorDomain,
		now:              time.Now,
	}
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (s *authService) IssueToken(sess domain.Session) (string, error) {
	if sess.UID == "" || sess.Email == "" {
		return "", errors.New("uid and email are required to issue a token")
	}
	now := s.now()
	claims := &jwtClaims{
		UID:   sess.UID,
		Email: sess.Email,
		Name:  sess.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

func (s *authService) ParseToken(tokenString string) (domain.Session, error) {
	claims := &jwtClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return domain.Session{}, ErrTokenExpired
		}
		return domain.Session{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UID == "" || claims.Email == "" {
		return domain.Session{}, fmt.Errorf("%w: missing claims", ErrTokenInvalid)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return domain.Session{}, fmt.Errorf("%w: unexpected issuer %q", ErrTokenInvalid, claims.Issuer)
	}
	return domain.Session{
		UID:         claims.UID,
		Email:       claims.Email,
		DisplayName: claims.Name,
		Kind:        domain.ClassifyAccountFor(claims.Email, s.instructorDomain),
	}, nil
}
