package nlogin

import "testing"

func TestOfflineUUID_KnownVectors(t *testing.T) {
	cases := map[string]string{
		"Notch": "b50ad385829d3141a2167e7d7539ba7f",
		"jeb_":  "a762f5604fce3236812ab80efff0b62b",
	}
	for name, want := range cases {
		if got := OfflineUUID(name); got != want {
			t.Fatalf("OfflineUUID(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestOfflineUUID_Shape(t *testing.T) {
	for _, name := range []string{"", "a", "Steve", "xX_Herobrine_Xx", "名前"} {
		id := OfflineUUID(name)
		if len(id) != 32 {
			t.Fatalf("OfflineUUID(%q) length %d", name, len(id))
		}
		for _, r := range id {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				t.Fatalf("OfflineUUID(%q) = %q: not lowercase hex", name, id)
			}
		}
		// Version nibble 3 (byte 6 high nibble), variant bits 10 (byte 8).
		if id[12] != '3' {
			t.Fatalf("OfflineUUID(%q) = %q: version nibble %c", name, id, id[12])
		}
		switch id[16] {
		case '8', '9', 'a', 'b':
		default:
			t.Fatalf("OfflineUUID(%q) = %q: variant nibble %c", name, id, id[16])
		}
	}
}

func TestOfflineUUID_Deterministic(t *testing.T) {
	if OfflineUUID("Steve") != OfflineUUID("Steve") {
		t.Fatalf("expected deterministic output")
	}
	if OfflineUUID("Steve") == OfflineUUID("steve") {
		t.Fatalf("derivation must be case-sensitive on the raw name")
	}
}
