package main

import (
	"context"
	"net/http"

	"bloglist/internal/userservice"
)

type contextKey string

const userContextKey = contextKey("user")

// createUserContext attaches the resolved acting user to the request. The
// value lives for exactly one request.
func (app *application) createUserContext(r *http.Request, user *userservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(userContextKey).(*userservice.User)
	if !ok {
		return &userservice.AnonymousUser
	}
	return user
}
