// Package session owns the single in-process navigation state: which view is
// authoritative and which customer, if any, is authenticated.
package session

// View identifies one of the four application views. Exactly one view is
// active at any time.
type View int

const (
	// ViewLogin is the initial logged-out view.
	ViewLogin View = iota

	// ViewRegister is the logged-out registration view. It is also reachable
	// from the logged-in views via "add user".
	ViewRegister

	// ViewDashboard is the logged-in landing view.
	ViewDashboard

	// ViewUsersList is the logged-in customer management view.
	ViewUsersList
)

// String returns the stable name used in transport payloads and logs.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewDashboard:
		return "dashboard"
	case ViewUsersList:
		return "users_list"
	default:
		return "unknown"
	}
}

// LoggedIn reports whether the view belongs to the logged-in family.
// The current customer reference is held only while this is true.
func (v View) LoggedIn() bool {
	return v == ViewDashboard || v == ViewUsersList
}
