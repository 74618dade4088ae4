// Package auth provides password-based account authentication primitives:
// bcrypt hashing, signed session tokens, HTTP helpers, and the account
// lifecycle (register, login, profile, deletion) backed by Bun repositories.
//
// Tokens:
//   - TokenService issues HMAC-signed JWTs carrying the account id and email.
//     Tokens expire after a fixed TTL and are validated on every guarded
//     request; the server keeps no session state.
//   - A structurally missing token is an authorization failure (401). A token
//     that is present but expired or fails its signature check is a bad
//     request (400). Clients log out by discarding the token.
//
// Accounts:
//   - Users are stored via Bun with a soft-delete column. Deleting an account
//     keeps the row but removes it from every lookup, so outstanding tokens
//     stop resolving to a profile once they are next used.
//   - Email is the login identifier and is unique at the storage level.
package auth
