package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func okHandler(ctx context.Context, _ interface{}) (interface{}, error) {
	claims, _ := ClaimsFromContext(ctx)
	return claims, nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})

	t.Run("skips whitelisted methods", func(t *testing.T) {
		info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
		if _, err := interceptor(context.Background(), nil, info, okHandler); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects missing metadata", func(t *testing.T) {
		info := &grpc.UnaryServerInfo{FullMethod: "/qarz.desk.v1.DeskService/GetSlip"}
		_, err := interceptor(context.Background(), nil, info, okHandler)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
		}
	})

	t.Run("attaches claims for a valid token", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, "", []string{RoleAdmin})
		if err != nil {
			t.Fatal(err)
		}
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		info := &grpc.UnaryServerInfo{FullMethod: "/qarz.desk.v1.DeskService/GetSlip"}

		resp, err := interceptor(ctx, nil, info, okHandler)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, ok := resp.(*Claims)
		if !ok || claims.UserID != userID {
			t.Fatalf("claims not propagated: %#v", resp)
		}
	})
}

func TestRequireRole(t *testing.T) {
	interceptor := RequireRole([]string{"/qarz.desk.v1.DeskService/Calculate"}, RoleAdmin)
	info := &grpc.UnaryServerInfo{FullMethod: "/qarz.desk.v1.DeskService/LookupByToken"}

	applicant := ContextWithClaims(context.Background(), &Claims{Roles: []string{RoleApplicant}})
	if _, err := interceptor(applicant, nil, info, okHandler); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("code = %v, want PermissionDenied", status.Code(err))
	}

	admin := ContextWithClaims(context.Background(), &Claims{Roles: []string{RoleAdmin}})
	if _, err := interceptor(admin, nil, info, okHandler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skipped := &grpc.UnaryServerInfo{FullMethod: "/qarz.desk.v1.DeskService/Calculate"}
	if _, err := interceptor(applicant, nil, skipped, okHandler); err != nil {
		t.Fatalf("skipped method should pass: %v", err)
	}
}
