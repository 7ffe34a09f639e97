package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Daskott/contactbook/colors"
	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-ID"

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware tags every request with an id (kept from the
// X-Request-ID header when the client sends one) & logs its outcome
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         http.StatusOK,
		}

		requestID := r.Header.Get(REQUEST_ID_HEADER)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(REQUEST_ID_HEADER, requestID)

		defer func() {
			logg.Info(
				r.Method, " ",
				r.RequestURI, " ",
				colors.HTTPStatus(responseWriter.Status), " ",
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))), " ",
				colors.Blue(requestID))
		}()

		ctx := context.WithValue(r.Context(), REQUEST_ID_KEY, requestID)
		next.ServeHTTP(responseWriter, r.WithContext(ctx))
	})
}

// initialContextMiddleware bounds the request with the configured timeout
// & adds the decoded token to the request context
func initialContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), settings.requestTimeout)
		defer cancel()

		ctx = context.WithValue(ctx, DECODED_JWT_KEY, decodeAndVerifyAuthHeader(ctx, r.Header.Get("Authorization")))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func protectedRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decodedJWT, _ := r.Context().Value(DECODED_JWT_KEY).(DecodedJWT)
		if decodedJWT.Claims == nil {
			logg.Info(decodedJWT.ErrorMsg)
			writeResponse(w, ResponsePayload{Message: "Unauthenticated."}, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
