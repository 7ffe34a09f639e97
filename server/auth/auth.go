package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const DEFAULT_TOKEN_TTL = 24 * time.Hour

// PasswordHashCost is the bcrypt cost used by HashPassword
var PasswordHashCost = 14

// TokenClaims identifies a user & the account (tenant) every request
// made with the token is scoped to
type TokenClaims struct {
	AccountID uint   `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.StandardClaims
}

func NewTokenClaims(userID, accountID uint, firstName, lastName string, ttl time.Duration) TokenClaims {
	if ttl <= 0 {
		ttl = DEFAULT_TOKEN_TTL
	}

	issuedAt := time.Now()
	return TokenClaims{
		AccountID: accountID,
		FirstName: firstName,
		LastName:  lastName,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(ttl).Unix(),
		},
	}
}

// UserID is the user the token was issued to
func (claims *TokenClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %v", claims.Subject, err)
	}
	return uint(id), nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func EncodeJWT(claims TokenClaims, keyPair *key.KeyPair) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod("RS256"), claims)
	token.Header["kid"] = keyPair.Kid

	tokenString, err := token.SignedString(keyPair.PrivateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeJWT(tokenString string, keyPair *key.KeyPair) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return keyPair.PublicKey, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to TokenClaims")
	}

	if tokenClaims.AccountID == 0 {
		return nil, fmt.Errorf("invalid jwt: missing account_id")
	}

	return tokenClaims, nil
}
