package hashalg

import (
	"strings"
	"testing"
)

func TestRegistry_Resolve(t *testing.T) {
	r, err := NewRegistry(DefaultConfig())
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}

	alg, err := r.Resolve("$SHA$salt$digest")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if alg.Kind() != KindAuthMe {
		t.Fatalf("expected authme strategy, got %q", alg.Kind())
	}

	if _, err := r.Resolve("not-a-hash"); !IsUnknownFormat(err) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := r.Resolve("$md5$salt$digest"); !IsUnknownFormat(err) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRegistry_WriterFollowsConfig(t *testing.T) {
	r, err := NewRegistry(Config{WriteAlgorithm: KindSHA512})
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}

	h, err := r.Writer().Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(h, "$SHA512$") {
		t.Fatalf("expected $SHA512$ prefix, got %q", h)
	}
	if r.WriteKind() != KindSHA512 {
		t.Fatalf("WriteKind = %q", r.WriteKind())
	}
}

func TestRegistry_NeedsRehash(t *testing.T) {
	r, err := NewRegistry(Config{WriteAlgorithm: KindBcrypt, BcryptCost: 4})
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}

	needs, err := r.NeedsRehash("$SHA$salt$digest")
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !needs {
		t.Fatalf("legacy hash should need rehash under bcrypt writer")
	}

	h, err := r.Writer().Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	needs, err = r.NeedsRehash(h)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if needs {
		t.Fatalf("fresh writer hash should not need rehash")
	}

	if _, err := r.NeedsRehash("garbage"); !IsUnknownFormat(err) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRegistry_RejectsUnknownWriter(t *testing.T) {
	if _, err := NewRegistry(Config{WriteAlgorithm: Kind("md5")}); err == nil {
		t.Fatalf("expected error for unknown write algorithm")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NLOGIN_HASH_ALGORITHM", "SHA256")
	t.Setenv("NLOGIN_BCRYPT_COST", "10")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.WriteAlgorithm != KindSHA256 {
		t.Fatalf("WriteAlgorithm = %q", cfg.WriteAlgorithm)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("BcryptCost = %d", cfg.BcryptCost)
	}

	t.Setenv("NLOGIN_HASH_ALGORITHM", "scrypt")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
}
