package api

import (
	"context"
	"net/http"

	"github.com/webiquedev/opsboard-backend/auth"
)

type keyType string

const (
	sessionRejectedKey keyType = "sessionRejected"
)

// ctxWithSessionState stores the verified sessions of a request, and whether
// any presented token was refused.
func ctxWithSessionState(ctx context.Context, state auth.State, rejected bool) context.Context {
	ctx = auth.WithState(ctx, state)
	return context.WithValue(ctx, sessionRejectedKey, rejected)
}

// ctxSessionRejected reports whether the request carried a token that failed
// verification.
func ctxSessionRejected(ctx context.Context) bool {
	rejected, _ := ctx.Value(sessionRejectedKey).(bool)
	return rejected
}

func sessionState(r *http.Request) auth.State {
	return auth.FromContext(r.Context())
}
