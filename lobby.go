package session

import "sync"

// JoinParameters is the tuple a stream join needs. It is derived per
// navigation and never cached across stream sessions; the stream-join
// collaborator is responsible for rejecting empty ids.
type JoinParameters struct {
	StreamID    string
	SpaceID     string
	UserToken   string
	DisplayName string
}

// LobbyEntry resolves the join parameters for one lobby navigation. The
// token is snapshotted at entry; the display name stays live while the
// entry is mounted since a viewer may change identity mid-session.
type LobbyEntry struct {
	mu          sync.Mutex
	streamID    string
	spaceID     string
	userToken   string
	displayName string
	cancel      func()
}

// NewLobbyEntry reads spaceId/streamId from the route (absent values default
// to "" rather than failing the navigation) and the current token and name
// from the session.
func NewLobbyEntry(route Route, session *Service) *LobbyEntry {
	e := &LobbyEntry{
		streamID:  route.Param("streamId"),
		spaceID:   route.Param("spaceId"),
		userToken: session.GetToken(),
	}

	e.cancel = session.GetUserName().Subscribe(func(name string) {
		e.mu.Lock()
		e.displayName = name
		e.mu.Unlock()
	})

	return e
}

// Params assembles the join parameters from the current state.
func (e *LobbyEntry) Params() JoinParameters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return JoinParameters{
		StreamID:    e.streamID,
		SpaceID:     e.spaceID,
		UserToken:   e.userToken,
		DisplayName: e.displayName,
	}
}

// Close unsubscribes from the display name signal. Safe to call more than
// once.
func (e *LobbyEntry) Close() {
	if e.cancel != nil {
		e.cancel()
	}
}
