package access

import (
	"net/http"
	"testing"
)

func uintPtr(v uint) *uint { return &v }

func TestOwnerOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		id     Identity
		method string
		owner  *uint
		want   Decision
	}{
		{"anonymous read", Identity{}, http.MethodGet, uintPtr(1), Allow},
		{"anonymous write", Identity{}, http.MethodPatch, uintPtr(1), Unauthenticated},
		{"owner write", Identity{UserID: 1}, http.MethodDelete, uintPtr(1), Allow},
		{"other write", Identity{UserID: 2}, http.MethodPut, uintPtr(1), Forbidden},
		{"orphaned resource", Identity{UserID: 2}, http.MethodDelete, nil, Forbidden},
		{"head is safe", Identity{UserID: 2}, http.MethodHead, uintPtr(1), Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OwnerOrReadOnly(tt.id, tt.method, tt.owner); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDonatorOfCollect(t *testing.T) {
	if got := DonatorOfCollect(Identity{UserID: 3}, http.MethodPost, false); got != Forbidden {
		t.Fatalf("non-donor post: got %s", got)
	}
	if got := DonatorOfCollect(Identity{UserID: 3}, http.MethodPost, true); got != Allow {
		t.Fatalf("donor post: got %s", got)
	}
	if got := DonatorOfCollect(Identity{}, http.MethodPost, true); got != Unauthenticated {
		t.Fatalf("anonymous post: got %s", got)
	}
	if got := DonatorOfCollect(Identity{UserID: 3}, http.MethodGet, false); got != Allow {
		t.Fatalf("read: got %s", got)
	}
}

func TestAllAndErr(t *testing.T) {
	if d := All(Allow, Authenticated(Identity{}), Forbidden); d != Unauthenticated {
		t.Fatalf("got %s, want first failure", d)
	}
	if All(Allow, Allow).Err() != nil {
		t.Fatal("allow must map to nil error")
	}
	if Forbidden.Err() != ErrPermissionDenied {
		t.Fatal("forbidden must map to ErrPermissionDenied")
	}
}
