package model

import "time"

// User represents an application user record as stored in the `users`
// table. The id is an opaque UUID string generated at signup and never
// reused. Deactivated users (IsActive=false) keep their rows but can no
// longer authenticate.
//
// Fields:
//  ID        – primary key, UUID string.
//  Email     – unique email address (uniqueness is case-sensitive).
//  HashedPW  – bcrypt hashed password; never serialized to clients.
//  IsActive  – whether the account may authenticate.
//  CreatedAt – timestamp of creation.
type User struct {
	ID        string    // users.id
	Email     string    // users.email
	HashedPW  string    // users.hashed_pw
	IsActive  bool      // users.is_active
	CreatedAt time.Time // users.created_at
}
