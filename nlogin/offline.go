package nlogin

import (
	"crypto/md5" // #nosec G501 -- not used for security; fixed legacy id derivation.
	"encoding/hex"
)

// OfflineUUID derives the deterministic unique id for a player without a
// platform identity: the MD5 of "OfflinePlayer:<name>" with the version
// nibble forced to 3 and the RFC 4122 variant bits forced to 10, exactly
// as the game computes offline-mode UUIDs. Rendered as 32 lowercase hex
// characters without dashes.
//
// Determinism matters: re-registering an unclaimed account under the
// same name must resolve to the same identity every time.
func OfflineUUID(name string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + name)) // #nosec G401
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return hex.EncodeToString(sum[:])
}
