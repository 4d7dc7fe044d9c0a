package bot

import "sync"

// State enumerates the steps of the product-creation conversation.
// An operator with no session is implicitly idle.
type State int

const (
	StateAwaitingName State = iota + 1
	StateAwaitingDescription
	StateAwaitingPrice
	StateAwaitingCategory
	StateAwaitingImages
)

// Draft accumulates product fields across conversation steps.
type Draft struct {
	Name        string
	Description string
	Price       int
	CategoryID  string
	Images      []string
}

// Session is one operator's in-flight product creation. FlowID is
// unique per begun flow: asynchronous photo uploads capture it and
// may only append their result to the very flow they started in.
type Session struct {
	FlowID uint64
	State  State
	Draft  Draft
}

// SessionStore keeps per-operator conversation state keyed by the
// external Telegram id. It replaces ambient state/temp-data maps with
// one mutex-guarded store; entries are removed on cancel and on
// completion, so an idle operator has no entry at all.
type SessionStore struct {
	mu       sync.Mutex
	nextFlow uint64
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Begin starts a fresh flow for the operator, discarding any
// previous one, and returns a snapshot of the new session.
func (s *SessionStore) Begin(operatorID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFlow++
	sess := &Session{FlowID: s.nextFlow, State: StateAwaitingName}
	s.sessions[operatorID] = sess
	return *sess
}

// Get returns a snapshot of the operator's session, if any.
func (s *SessionStore) Get(operatorID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operatorID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Clear drops the operator's session and returns a snapshot of what
// was removed. Taking the snapshot under the same lock AppendImage
// holds means a caller finalizing from it sees every upload that was
// acknowledged; anything later misses the flow id check and is
// discarded. Clearing an absent session is a no-op.
func (s *SessionStore) Clear(operatorID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operatorID]
	if !ok {
		return Session{}, false
	}
	delete(s.sessions, operatorID)
	return *sess, true
}

// update applies fn to the live session under the lock.
func (s *SessionStore) update(operatorID int64, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operatorID]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// SetName stores the product name and advances to the description step.
func (s *SessionStore) SetName(operatorID int64, name string) bool {
	return s.update(operatorID, func(sess *Session) {
		sess.Draft.Name = name
		sess.State = StateAwaitingDescription
	})
}

// SetDescription stores the description and advances to the price step.
func (s *SessionStore) SetDescription(operatorID int64, description string) bool {
	return s.update(operatorID, func(sess *Session) {
		sess.Draft.Description = description
		sess.State = StateAwaitingPrice
	})
}

// SetPrice stores the parsed price and advances to the category step.
func (s *SessionStore) SetPrice(operatorID int64, price int) bool {
	return s.update(operatorID, func(sess *Session) {
		sess.Draft.Price = price
		sess.State = StateAwaitingCategory
	})
}

// SetCategory stores the category and advances to the images step.
func (s *SessionStore) SetCategory(operatorID int64, categoryID string) bool {
	return s.update(operatorID, func(sess *Session) {
		sess.Draft.CategoryID = categoryID
		sess.State = StateAwaitingImages
	})
}

// AppendImage adds an uploaded image URL, but only when the operator
// is still in the images step of the same flow the upload started in.
// A stale upload (operator finished, cancelled or restarted the flow
// meanwhile) is discarded: the second return is false and nothing is
// mutated. The first return is the image count after the append.
func (s *SessionStore) AppendImage(operatorID int64, flowID uint64, url string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operatorID]
	if !ok || sess.FlowID != flowID || sess.State != StateAwaitingImages {
		return 0, false
	}
	sess.Draft.Images = append(sess.Draft.Images, url)
	return len(sess.Draft.Images), true
}
