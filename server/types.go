package server

import (
	"github.com/Daskott/contactbook/server/auth"
)

type RequestContextKey string

const (
	DECODED_JWT_KEY RequestContextKey = "decodedJWT"
	REQUEST_ID_KEY  RequestContextKey = "requestID"
)

// ResponsePayload is the envelope of every JSON body the API writes,
// unset parts are left out
type ResponsePayload struct {
	Data    interface{}         `json:"data,omitempty"`
	Links   *PageLinks          `json:"links,omitempty"`
	Meta    *PageMeta           `json:"meta,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type DecodedJWT struct {
	Claims   *auth.TokenClaims
	ErrorMsg string
}

type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type PageMeta struct {
	CurrentPage int64  `json:"current_page"`
	From        *int64 `json:"from"`
	LastPage    int64  `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int64  `json:"per_page"`
	To          *int64 `json:"to"`
	Total       int64  `json:"total"`
}

type loginRequest struct {
	Email      *string `json:"email" validate:"required,email"`
	Password   *string `json:"password" validate:"required"`
	DeviceName *string `json:"device_name"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt int64  `json:"expires_at"`
}
