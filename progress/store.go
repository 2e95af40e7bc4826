package progress

import (
	"fmt"
	"log"
)

// LocalSource is the key-value cache side of the store. Get returns the
// empty string when the key is absent; a stored record payload is never
// empty.
type LocalSource interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// RemoteSource is the durable side of the store, one row per (user, course).
type RemoteSource interface {
	Get(userID, courseID uint) (Record, bool, error)
	Upsert(userID, courseID uint, rec Record) error
}

// Store is the single logical read/write surface over both sources. Local
// writes are synchronous so the next read in the same session sees them;
// remote writes ride the background writer.
type Store struct {
	local  LocalSource
	remote RemoteSource
	writer *Writer
}

func NewStore(local LocalSource, remote RemoteSource) *Store {
	return &Store{local: local, remote: remote, writer: NewWriter()}
}

// CacheKey builds the local cache key for a (user, course) pair.
func CacheKey(userID, courseID uint) string {
	return fmt.Sprintf("course_progress_%d_%d", userID, courseID)
}

// Reconcile is the load-time policy as one pure function: a non-empty
// remote record wins verbatim; otherwise a non-empty local record wins and
// is flagged for migration; otherwise the empty record. Presence of data
// decides, never timestamps.
func Reconcile(remote Record, remoteOK bool, local Record, localOK bool) (Record, bool) {
	if remoteOK && !remote.IsEmpty() {
		return remote, false
	}
	if localOK && !local.IsEmpty() {
		return local, true
	}
	return EmptyRecord(), false
}

// Load returns the learner's record for the course, reconciling the two
// sources. Every failure along the way is logged and swallowed; the learner
// path never sees a persistence error.
func (s *Store) Load(actor Actor, courseID uint) Record {
	var remote Record
	remoteOK := false
	if rec, found, err := s.remote.Get(actor.UserID, courseID); err != nil {
		log.Printf("progress: remote fetch failed for user=%d course=%d: %v", actor.UserID, courseID, err)
	} else if found {
		remote, remoteOK = rec, true
	}

	var local Record
	localOK := false
	if raw, err := s.local.Get(CacheKey(actor.UserID, courseID)); err != nil {
		log.Printf("progress: cache read failed for user=%d course=%d: %v", actor.UserID, courseID, err)
	} else if raw != "" {
		if rec, err := DecodeRecord([]byte(raw)); err != nil {
			// Unparseable cache counts as no data
			log.Printf("progress: discarding malformed cached record for user=%d course=%d: %v", actor.UserID, courseID, err)
		} else {
			local, localOK = rec, true
		}
	}

	rec, migrate := Reconcile(remote, remoteOK, local, localOK)
	if migrate {
		userID := actor.UserID
		s.writer.Enqueue(func() {
			if err := s.remote.Upsert(userID, courseID, rec); err != nil {
				log.Printf("progress: cache-to-remote migration failed for user=%d course=%d: %v", userID, courseID, err)
			}
		})
	}
	return rec
}

// Save writes the record: local cache synchronously, remote upsert in the
// background. Remote failure leaves the cache as the fallback source for
// the rest of the session.
func (s *Store) Save(actor Actor, courseID uint, rec Record) {
	payload, err := rec.Encode()
	if err != nil {
		log.Printf("progress: encode failed for user=%d course=%d: %v", actor.UserID, courseID, err)
		return
	}
	if err := s.local.Set(CacheKey(actor.UserID, courseID), string(payload)); err != nil {
		log.Printf("progress: cache write failed for user=%d course=%d: %v", actor.UserID, courseID, err)
	}

	userID := actor.UserID
	s.writer.Enqueue(func() {
		if err := s.remote.Upsert(userID, courseID, rec); err != nil {
			log.Printf("progress: remote save failed for user=%d course=%d: %v", userID, courseID, err)
		}
	})
}

// Flush waits for pending background writes. Tests and shutdown only.
func (s *Store) Flush() {
	s.writer.Flush()
}
