package session

// Repo stores session records keyed by session ID. Implementations live in
// the sessionstore package.
type Repo interface {
	Upsert(sessionID string, s Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
