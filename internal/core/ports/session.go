package ports

// PersistedSession is the durable client state: exactly two entries, an opaque
// bearer token and the JSON-serialized user record. Both are required
// together; absence of either means "no session".
type PersistedSession struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// SessionStorage is the persistence capability owned exclusively by the
// session store. Implementations must survive process restarts.
type SessionStorage interface {
	// Load returns the persisted session, or ok=false when none exists.
	// Unreadable storage is reported as an error, not as an empty session.
	Load() (s PersistedSession, ok bool, err error)
	Save(s PersistedSession) error
	Clear() error
}
