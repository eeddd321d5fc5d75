// Package credentials provides a minimal identity and session toolkit: account
// registration, password verification, signed session tokens, and role gating
// for protected routes.
//
// Token lifecycle:
//   - CredentialService registers accounts (bcrypt password hashes, never the
//     plaintext) and exchanges valid credentials for a signed JWT carrying the
//     subject, username, and role plus issued-at and expiry claims.
//   - TokenService issues and verifies HS256 tokens. Verification is stateless:
//     validity is determined entirely by signature and expiry, so rotating the
//     signing secret invalidates every outstanding token.
//
// Stores:
//   - UserStore is the pluggable persistence seam. MemoryStore is the
//     transient reference implementation; NewUsersRepository adapts a Bun
//     database with uniqueness enforced by the store itself.
//
// Request gating:
//   - middleware/tokenware validates bearer tokens on inbound requests and can
//     enforce an exact or minimum role before the handler runs. Guard exposes
//     the same extraction and verification as plain functions for non-HTTP
//     transports.
package credentials
