package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/internal/config"
	"github.com/swiftship/courier-web/token"
)

// Manager orchestrates the session lifecycle: credential login, proactive
// refresh on read, and logout. Refresh is lazy, a read that lands within
// the margin of expiry refreshes before returning; there is no background
// timer.
type Manager struct {
	api     *courierapi.Client
	repo    Repo
	decoder token.Decoder
	margin  time.Duration
	nowTime func() time.Time

	mu       sync.Mutex
	inflight map[string]*refreshCall
}

type refreshCall struct {
	done chan struct{}
	sess *Session
	err  error
}

type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func NewManager(api *courierapi.Client, repo Repo, decoder token.Decoder, cfg config.SessionConfig, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[NewManager] courier API client is required")
	}
	if repo == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}
	if decoder == nil {
		return nil, errors.New("[NewManager] token decoder is required")
	}

	m := &Manager{
		api:      api,
		repo:     repo,
		decoder:  decoder,
		margin:   cfg.GetRefreshMargin(),
		nowTime:  time.Now,
		inflight: make(map[string]*refreshCall),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Login exchanges credentials for a new session. The expiry is decoded from
// the returned token itself, a token the application cannot decode is
// treated the same as a response without one.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	auth, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Login]")
	}

	role, ok := ParseRole(auth.User.Usertype)
	if !ok {
		return nil, errors.Wrapf(courierapi.MalformedResponseErr, "[Manager.Login] unknown usertype %q", auth.User.Usertype)
	}

	expiresAt, err := token.Expiry(m.decoder, auth.AccessToken)
	if err != nil {
		return nil, errors.Wrap(courierapi.MalformedResponseErr, err.Error())
	}

	sess := Session{
		ID: uuid.New().String(),
		Identity: Identity{
			ID:       auth.User.ID,
			Email:    auth.User.Email,
			Username: auth.User.Username,
			Name:     auth.User.Name,
			Role:     role,
			Address:  auth.User.Address,
			Phone:    auth.User.Phone,
		},
		AccessToken: auth.AccessToken,
		ExpiresAt:   expiresAt,
		CreatedAt:   m.nowTime(),
	}

	if err := m.repo.Upsert(sess.ID, sess); err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] store session")
	}
	return &sess, nil
}

// Current returns the session for the given ID, refreshing the access token
// first when the read lands within the margin of expiry. A session carrying
// the terminal refresh marker surfaces as SessionExpiredErr, callers treat
// that as "no session" and send the user back to login.
func (m *Manager) Current(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, NotAuthenticatedErr
	}

	sess, err := m.repo.Get(sessionID)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return nil, NotAuthenticatedErr
		}
		return nil, errors.Wrap(err, "[Manager.Current] repo.Get")
	}

	if sess.Err != "" {
		return nil, SessionExpiredErr
	}

	if m.nowTime().Add(m.margin).Before(sess.ExpiresAt) {
		return &sess, nil
	}
	return m.refresh(ctx, sessionID, false)
}

// Logout notifies the remote API and clears local state. The notify is
// best-effort, a network failure never blocks local invalidation.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sess, err := m.repo.Get(sessionID)
	if err == nil && sess.AccessToken != "" {
		if err := m.api.LogoutNotify(ctx, sess.AccessToken); err != nil {
			log.Err(err).Msg("logout notify failed, clearing local session anyway")
		}
	}

	if err := m.repo.Delete(sessionID); err != nil {
		return errors.Wrap(err, "[Manager.Logout] repo.Delete")
	}
	return nil
}

// TokenSource binds a session to the dispatcher's TokenSource contract.
// Token reads go through Current so proactive refresh happens transparently;
// Refresh forces one regardless of the margin (the 401 retry path).
func (m *Manager) TokenSource(sessionID string) courierapi.TokenSource {
	return &managerTokenSource{m: m, sessionID: sessionID}
}

type managerTokenSource struct {
	m         *Manager
	sessionID string
}

func (ts *managerTokenSource) Token(ctx context.Context) (string, error) {
	sess, err := ts.m.Current(ctx, ts.sessionID)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

func (ts *managerTokenSource) Refresh(ctx context.Context) (string, error) {
	sess, err := ts.m.refresh(ctx, ts.sessionID, true)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// refresh coalesces concurrent callers onto a single in-flight exchange per
// session, so two reads observing the same expiring token never race token
// replacements.
func (m *Manager) refresh(ctx context.Context, sessionID string, force bool) (*Session, error) {
	m.mu.Lock()
	if call, ok := m.inflight[sessionID]; ok {
		m.mu.Unlock()
		<-call.done
		return call.sess, call.err
	}
	call := &refreshCall{done: make(chan struct{})}
	m.inflight[sessionID] = call
	m.mu.Unlock()

	call.sess, call.err = m.doRefresh(ctx, sessionID, force)

	m.mu.Lock()
	delete(m.inflight, sessionID)
	m.mu.Unlock()
	close(call.done)

	return call.sess, call.err
}

func (m *Manager) doRefresh(ctx context.Context, sessionID string, force bool) (*Session, error) {
	// Re-read inside the critical section: a coalesced caller may find the
	// token already replaced.
	sess, err := m.repo.Get(sessionID)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return nil, NotAuthenticatedErr
		}
		return nil, errors.Wrap(err, "[Manager.doRefresh] repo.Get")
	}

	// A failed refresh is terminal until re-login; repeated calls observe
	// the same state rather than retrying.
	if sess.Err != "" {
		return nil, SessionExpiredErr
	}

	if !force && m.nowTime().Add(m.margin).Before(sess.ExpiresAt) {
		return &sess, nil
	}

	newToken, refreshErr := m.api.Refresh(ctx, sess.AccessToken)
	var expiresAt time.Time
	if refreshErr == nil {
		expiresAt, refreshErr = token.Expiry(m.decoder, newToken)
	}

	if refreshErr != nil {
		sess.Err = RefreshFailedMarker
		if err := m.repo.Upsert(sessionID, sess); err != nil {
			return nil, errors.Wrap(err, "[Manager.doRefresh] store terminal state")
		}
		log.Err(refreshErr).Str("session_id", sessionID).Msg("token refresh failed, session is terminal")
		return nil, SessionExpiredErr
	}

	sess.AccessToken = newToken
	sess.ExpiresAt = expiresAt
	sess.Err = ""
	if err := m.repo.Upsert(sessionID, sess); err != nil {
		return nil, errors.Wrap(err, "[Manager.doRefresh] store refreshed session")
	}
	return &sess, nil
}
