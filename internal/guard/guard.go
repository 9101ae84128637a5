package guard

import "eventmart/internal/identity"

// Decision is the outcome of a route authorization check.
type Decision int

const (
	// Pending means identity resolution has not finished; nothing
	// conclusive should render yet.
	Pending Decision = iota
	Allow
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

// Authorize decides whether an identity may enter a destination. It is
// evaluated per navigation, never cached; identity and role can change
// mid-session. An empty allowed list admits any authenticated identity.
func Authorize(ident *identity.Identity, resolved bool, allowed []identity.Role) Decision {
	if !resolved {
		return Pending
	}
	if ident == nil {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Allow
	}
	for _, r := range allowed {
		if ident.Role == r {
			return Allow
		}
	}
	return RedirectUnauthorized
}

// RoleHome is where an identity lands when turned away from a screen it
// may not enter.
func RoleHome(role identity.Role) string {
	switch role {
	case identity.RoleVendor:
		return "/vendor-dashboard"
	case identity.RoleAdmin:
		return "/admin-dashboard"
	default:
		return "/dashboard"
	}
}
