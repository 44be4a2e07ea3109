package model

import "time"

// Account roles. The role is fixed at registration time and carried in the
// access token's "role" claim; handlers never branch on free-form strings.
const (
	RoleDonor     = "donor"
	RoleRequester = "requester"
)

// ValidRole reports whether s is one of the recognized account roles.
func ValidRole(s string) bool {
	return s == RoleDonor || s == RoleRequester
}

// User represents a row in the `users` table. Both donors and requesters
// authenticate through the same table; the UserType column decides which
// mutations the account may perform.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  UserType     – account role, RoleDonor or RoleRequester.
//  Phone        – contact number used for SMS alerts.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	UserType     string    // users.user_type
	Phone        string    // users.phone
	CreatedAt    time.Time // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
