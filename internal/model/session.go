package model

type SessionState int

const (
	SessionAnonymous SessionState = iota
	SessionPendingMFASetup
	SessionPendingMFALogin
	SessionAuthenticated
)

// Session is the server-side state held against an opaque client token.
// A session carries at most one marker at a time; the constructors below
// are the only way markers should be produced.
type Session struct {
	State  SessionState `json:"state"`
	UserID string       `json:"user_id,omitempty"`
}

func Anonymous() Session {
	return Session{State: SessionAnonymous}
}

func PendingMFASetup(userID string) Session {
	return Session{State: SessionPendingMFASetup, UserID: userID}
}

func PendingMFALogin(userID string) Session {
	return Session{State: SessionPendingMFALogin, UserID: userID}
}

func Authenticated(userID string) Session {
	return Session{State: SessionAuthenticated, UserID: userID}
}
