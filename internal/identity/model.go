package identity

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// ParseRole maps signup input to a role, defaulting to user. Admin is
// assigned out-of-band, never through signup.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleVendor:
		return Role(s), nil
	case "":
		return RoleUser, nil
	case RoleAdmin:
		return "", ErrRoleNotAssignable
	default:
		return "", ErrInvalidRole
	}
}

// Identity is the authenticated principal as the rest of the system sees it.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

// Account is the stored user row, including credentials. It never leaves
// this package.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	DisplayName  string
	CreatedAt    time.Time
}

func (a *Account) Identity() *Identity {
	return &Identity{
		ID:          a.ID,
		Email:       a.Email,
		Role:        a.Role,
		DisplayName: a.DisplayName,
	}
}

type SignUpResult struct {
	Identity             *Identity `json:"identity"`
	RequiresConfirmation bool      `json:"requires_confirmation"`
}
