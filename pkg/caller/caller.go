// Package caller identifies the principal behind a request.
//
// Authentication happens outside this service; a request arrives with an
// already-verified identity and a role flag. Caller is the tagged union the
// rest of the code branches on: Authenticated(id) for a normal user,
// Privileged for the trusted service role, and the zero value for anonymous.
package caller

import (
	"context"

	"github.com/Prodbylino/shiftflow/pkg/errors"
)

type kind int

const (
	kindAnonymous kind = iota
	kindAuthenticated
	kindPrivileged
)

// Caller is the principal performing a request. The zero value is anonymous.
type Caller struct {
	kind kind
	id   string
}

// Authenticated returns a caller for a normal authenticated user.
func Authenticated(id string) Caller {
	return Caller{kind: kindAuthenticated, id: id}
}

// Privileged returns the trusted service caller. It carries no identity of
// its own and must name a target owner explicitly on every scoped operation.
func Privileged() Caller {
	return Caller{kind: kindPrivileged}
}

// IsAuthenticated reports whether the caller is a normal authenticated user.
func (c Caller) IsAuthenticated() bool { return c.kind == kindAuthenticated }

// IsPrivileged reports whether the caller is the trusted service caller.
func (c Caller) IsPrivileged() bool { return c.kind == kindPrivileged }

// IsAnonymous reports whether no identity was established.
func (c Caller) IsAnonymous() bool { return c.kind == kindAnonymous }

// ID returns the authenticated user ID, or "" for privileged and anonymous
// callers.
func (c Caller) ID() string { return c.id }

// ResolveOwner applies the single authorization rule shared by every
// owner-scoped operation:
//
//   - a privileged caller must name the target owner explicitly and gets it
//     as-is;
//   - an authenticated caller may only target itself; an empty target
//     defaults to the caller's own identity, any other target is rejected
//     outright rather than silently substituted;
//   - an anonymous caller is always rejected.
func (c Caller) ResolveOwner(target string) (string, error) {
	switch c.kind {
	case kindPrivileged:
		if target == "" {
			return "", errors.BadRequest("owner is required for service-role calls")
		}
		return target, nil
	case kindAuthenticated:
		if target == "" || target == c.id {
			return c.id, nil
		}
		return "", errors.Forbidden("cannot access another user's data")
	default:
		return "", errors.Unauthorized("not authenticated")
	}
}

// contextKey is a private type for context keys to prevent collisions
type contextKey struct{}

// WithCaller returns a new context with the caller attached.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext retrieves the caller from the context. A context without a
// caller yields the anonymous caller.
func FromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(contextKey{}).(Caller); ok {
		return c
	}
	return Caller{}
}
