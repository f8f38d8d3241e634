package etprimitive

import "testing"

func TestAuthenticated(t *testing.T) {
	id := Authenticated("user-1")
	if id.IsAnonymous() {
		t.Fatalf("authenticated identity must not be anonymous")
	}
	if id.PrincipalID() != "user-1" {
		t.Fatalf("principal id = %q, want user-1", id.PrincipalID())
	}
}

func TestAuthenticatedEmptyFallsBackToAnonymous(t *testing.T) {
	// 空主体 ID 无法标识任何人，退化为匿名
	id := Authenticated("")
	if !id.IsAnonymous() {
		t.Fatalf("empty principal must fall back to anonymous")
	}
}

func TestAnonymous(t *testing.T) {
	id := Anonymous()
	if !id.IsAnonymous() {
		t.Fatalf("anonymous identity must be anonymous")
	}
	if id.PrincipalID() != "" {
		t.Fatalf("anonymous principal id must be empty, got %q", id.PrincipalID())
	}
}

func TestEqual(t *testing.T) {
	if !Authenticated("a").Equal(Authenticated("a")) {
		t.Fatalf("same principal must be equal")
	}
	if Authenticated("a").Equal(Authenticated("b")) {
		t.Fatalf("different principals must not be equal")
	}
	if !Anonymous().Equal(Anonymous()) {
		t.Fatalf("anonymous identities must be equal")
	}
	if Anonymous().Equal(Authenticated("a")) {
		t.Fatalf("anonymous must not equal authenticated")
	}
}

func TestIdentityFromOwnerColumn(t *testing.T) {
	if !IdentityFromOwnerColumn("").IsAnonymous() {
		t.Fatalf("empty owner column must map to anonymous")
	}

	id := IdentityFromOwnerColumn("user-9")
	if id.IsAnonymous() || id.PrincipalID() != "user-9" {
		t.Fatalf("owner column must map to authenticated principal")
	}
}
