package lab

import "time"

// AdminRole is the role value granting admin surfaces. The client only
// consumes the flag; enforcement happens server-side.
const AdminRole = "admin"

// User is an account as reported by the backend.
type User struct {
	ID        string
	Account   string
	Name      string
	Role      string
	CreatedAt time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == AdminRole }

// Credentials are the login/registration inputs.
type Credentials struct {
	Account  string
	Password string
}
