// Package route decides which screen group the app should show for a given
// session state.
package route

// Group is a named partition of the screens gated by session state.
type Group int

const (
	// GroupPublic holds the login screen
	GroupPublic Group = iota
	// GroupAuthenticated holds the chat screen
	GroupAuthenticated
)

// String returns a human-readable name for the group
func (g Group) String() string {
	switch g {
	case GroupPublic:
		return "public"
	case GroupAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// For returns the group matching a session state.
func For(authenticated bool) Group {
	if authenticated {
		return GroupAuthenticated
	}
	return GroupPublic
}

// Decide returns the group to redirect to, and false when the current group
// already matches the session state.
func Decide(authenticated bool, current Group) (Group, bool) {
	switch {
	case authenticated && current != GroupAuthenticated:
		return GroupAuthenticated, true
	case !authenticated && current == GroupAuthenticated:
		return GroupPublic, true
	default:
		return current, false
	}
}
