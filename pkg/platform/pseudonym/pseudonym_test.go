package pseudonym

import "testing"

func TestNewHasher(t *testing.T) {
	if _, err := NewHasher(""); err == nil {
		t.Fatalf("expected empty key to be rejected")
	}
	long := make([]byte, 65)
	if _, err := NewHasher(string(long)); err == nil {
		t.Fatalf("expected oversized key to be rejected")
	}
	if _, err := NewHasher("dev-pseudonym-key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHashStableAndKeyed(t *testing.T) {
	a, err := NewHasher("key-a")
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	b, err := NewHasher("key-b")
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}

	if a.Hash("49002010976") != a.Hash("49002010976") {
		t.Fatalf("expected stable pseudonyms for identical input")
	}
	if a.Hash("49002010976") == a.Hash("49002010987") {
		t.Fatalf("expected distinct pseudonyms for distinct codes")
	}
	if a.Hash("49002010976") == b.Hash("49002010976") {
		t.Fatalf("expected pseudonyms to depend on the key")
	}
	if got := a.Hash("49002010976"); len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}
