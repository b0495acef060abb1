package account

import (
	"context"
	"testing"
)

func seedRow(t *testing.T, s *MemoryStore, in InsertInput) int64 {
	t.Helper()
	if in.PasswordHash == "" {
		in.PasswordHash = "$SHA$salt$digest"
	}
	id, err := s.Insert(context.Background(), in)
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	return id
}

func TestMemoryStore_FindByPlatformIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	mid := seedRow(t, s, InsertInput{
		LastName: "Steve",
		UniqueID: "069a79f444e94726a5befca90e38aaf5",
		Platform: Mojang("069a79f444e94726a5befca90e38aaf5"),
	})
	bid := seedRow(t, s, InsertInput{
		LastName: "Alex",
		UniqueID: "00000000000000000009012345678abc",
		Platform: Bedrock("00000000000000000009012345678abc"),
	})

	got, err := s.FindAccountID(ctx, "069a79f444e94726a5befca90e38aaf5", SearchByMojangID)
	if err != nil || got != mid {
		t.Fatalf("mojang lookup = (%d, %v), want %d", got, err, mid)
	}

	got, err = s.FindAccountID(ctx, "00000000000000000009012345678abc", SearchByBedrockID)
	if err != nil || got != bid {
		t.Fatalf("bedrock lookup = (%d, %v), want %d", got, err, bid)
	}

	if _, err = s.FindAccountID(ctx, "no-such-id", SearchByMojangID); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_NameLookup_ClaimedWinsTie(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// Unclaimed row inserted first, claimed row second: the claimed one
	// must still win the name tie.
	seedRow(t, s, InsertInput{
		LastName: "Notch",
		UniqueID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	claimed := seedRow(t, s, InsertInput{
		LastName: "Notch",
		UniqueID: "069a79f444e94726a5befca90e38aaf5",
		Platform: Mojang("069a79f444e94726a5befca90e38aaf5"),
	})

	got, err := s.FindAccountID(ctx, "Notch", SearchByName)
	if err != nil {
		t.Fatalf("FindAccountID error: %v", err)
	}
	if got != claimed {
		t.Fatalf("tie-break: got id %d, want claimed id %d", got, claimed)
	}
}

func TestMemoryStore_NameLookup_Strict(t *testing.T) {
	s := NewMemoryStore(WithMemoryStrictNameLookup(true))
	ctx := context.Background()

	claimed := seedRow(t, s, InsertInput{
		LastName: "Notch",
		UniqueID: "069a79f444e94726a5befca90e38aaf5",
		Platform: Mojang("069a79f444e94726a5befca90e38aaf5"),
	})
	_ = claimed

	// Only unclaimed rows may match by name in strict mode.
	if _, err := s.FindAccountID(ctx, "Notch", SearchByName); !IsNotFound(err) {
		t.Fatalf("strict mode must skip claimed rows, got %v", err)
	}

	unclaimed := seedRow(t, s, InsertInput{
		LastName: "Notch",
		UniqueID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	got, err := s.FindAccountID(ctx, "notch", SearchByName)
	if err != nil || got != unclaimed {
		t.Fatalf("strict lookup = (%d, %v), want %d", got, err, unclaimed)
	}
}

func TestMemoryStore_NotFoundVsUnavailable(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.FindAccountID(ctx, "Ghost", SearchByName)
	if !IsNotFound(err) || IsStoreUnavailable(err) {
		t.Fatalf("expected pure not-found, got %v", err)
	}

	s.SetUnavailable(true)
	_, err = s.FindAccountID(ctx, "Ghost", SearchByName)
	if !IsStoreUnavailable(err) || IsNotFound(err) {
		t.Fatalf("expected pure store-unavailable, got %v", err)
	}
}

func TestMemoryStore_Exists_FailOpen(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if s.Exists(ctx, ColumnLastName, "Steve") {
		t.Fatalf("empty store must report false while reachable")
	}

	s.SetUnavailable(true)
	if !s.Exists(ctx, ColumnLastName, "Steve") {
		t.Fatalf("unreachable store must fail open (report true)")
	}
}

func TestMemoryStore_UpdatePlatformPaths(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id := seedRow(t, s, InsertInput{
		LastName: "Claimer",
		UniqueID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		LastIP:   "10.0.0.1",
	})

	// Name-path update: platform columns untouched.
	if err := s.Update(ctx, id, UpdateInput{
		PasswordHash: "$SHA$x$y",
		LastIP:       "10.0.0.2",
	}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	a, err := s.GetAccount(ctx, id)
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if a.MojangID != nil || a.BedrockID != nil {
		t.Fatalf("name-path update must not touch platform columns")
	}
	if a.LastIP == nil || *a.LastIP != "10.0.0.2" {
		t.Fatalf("last_ip not updated: %+v", a)
	}

	// Mojang-path update claims the row.
	if err := s.Update(ctx, id, UpdateInput{
		PasswordHash: "$SHA$x$z",
		LastIP:       "10.0.0.3",
		Platform:     Mojang("069a79f444e94726a5befca90e38aaf5"),
	}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	a, err = s.GetAccount(ctx, id)
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if a.MojangID == nil || *a.MojangID != "069a79f444e94726a5befca90e38aaf5" {
		t.Fatalf("mojang-path update must re-assert the binding: %+v", a)
	}
	if a.BedrockID != nil {
		t.Fatalf("bedrock column must stay null")
	}

	if err := s.Update(ctx, 9999, UpdateInput{PasswordHash: "$SHA$x$y"}); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound for missing row, got %v", err)
	}
}

func TestMemoryStore_InsertDuplicateUniqueID(t *testing.T) {
	s := NewMemoryStore()

	seedRow(t, s, InsertInput{
		LastName: "One",
		UniqueID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	_, err := s.Insert(context.Background(), InsertInput{
		LastName:     "Two",
		PasswordHash: "$SHA$a$b",
		UniqueID:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	if !IsConflict(err) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryStore_HashReadWrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id := seedRow(t, s, InsertInput{
		LastName:     "Hashy",
		UniqueID:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		PasswordHash: "$SHA$old$digest",
	})

	h, err := s.PasswordHash(ctx, id)
	if err != nil || h != "$SHA$old$digest" {
		t.Fatalf("PasswordHash = (%q, %v)", h, err)
	}

	if err := s.SetPasswordHash(ctx, id, "$2a$04$new"); err != nil {
		t.Fatalf("SetPasswordHash error: %v", err)
	}
	h, err = s.PasswordHash(ctx, id)
	if err != nil || h != "$2a$04$new" {
		t.Fatalf("PasswordHash after set = (%q, %v)", h, err)
	}

	if _, err := s.PasswordHash(ctx, 777); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.SetPasswordHash(ctx, 777, "$2a$04$x"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
