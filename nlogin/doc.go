// Package nlogin is the credential-verification and identity-resolution
// layer a website puts in front of the game server's player-account
// table. It looks accounts up by Mojang UUID, Bedrock id, or display
// name, verifies passwords against stored hashes of any supported
// legacy format, rotates hashes on password change, and registers new
// accounts while reconciling identity fields.
//
// Quick start:
//
//	cfg := nlogin.FromEnv()
//	svc, pool, err := nlogin.Open(ctx, cfg)
//	if err != nil {
//		// ...
//	}
//	defer pool.Close()
//
//	ok, err := svc.VerifyPassword(ctx, accountID, password)
//
// The package defines no transport: it is consumed in-process by the
// web front end.
package nlogin
