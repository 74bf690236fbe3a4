package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type claimsKey struct{}

// Messages shared by the HTTP and gRPC surfaces.
const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
	MsgAdminOnly    = "Access denied. Admin only."
)

// ContextWithClaims attaches the authenticated caller to ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the caller attached by an auth middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return token, true
}

type methodSet map[string]struct{}

func newMethodSet(methods []string) methodSet {
	set := make(methodSet, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	return set
}

func (s methodSet) has(method string) bool {
	_, ok := s[method]
	return ok
}

// UnaryAuthInterceptor validates the bearer token in the "authorization"
// metadata and attaches its claims. Methods in skipMethods pass unchecked.
func UnaryAuthInterceptor(jwtService *JWTService, skipMethods []string) grpc.UnaryServerInterceptor {
	skip := newMethodSet(skipMethods)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if skip.has(info.FullMethod) {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, MsgNoToken)
		}
		token, ok := BearerToken(values[0])
		if !ok {
			return nil, status.Error(codes.Unauthenticated, MsgNoToken)
		}
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, MsgInvalidToken)
		}
		return handler(ContextWithClaims(ctx, claims), req)
	}
}

// RequireRole admits callers holding any of roles. Methods in skipMethods
// only need an authenticated caller, or none at all when the auth
// interceptor also skips them.
func RequireRole(skipMethods []string, roles ...string) grpc.UnaryServerInterceptor {
	skip := newMethodSet(skipMethods)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if skip.has(info.FullMethod) {
			return handler(ctx, req)
		}
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, MsgNoToken)
		}
		for _, role := range roles {
			if claims.HasRole(role) {
				return handler(ctx, req)
			}
		}
		return nil, status.Error(codes.PermissionDenied, MsgAdminOnly)
	}
}
