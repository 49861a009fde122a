package models

// Session is a snapshot of the in-memory authentication state.
//
// An empty Token and a nil User stand for "absent". IsAuthenticated is
// only ever true together with a non-empty Token and a non-nil User.
type Session struct {
	User            *User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// SessionRecord is the durable copy of a session kept by the local store.
type SessionRecord struct {
	Token string
	User  User
}
