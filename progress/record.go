package progress

import "encoding/json"

// Roles supplied by the identity layer. The engine treats them as opaque
// labels; only the store's visibility scoping branches on them.
const (
	RoleStudent    = "STUDENT"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Actor is the explicit caller context passed into store operations instead
// of reading auth state from an ambient provider.
type Actor struct {
	UserID uint
	Role   string
}

// QuizProgress is the quiz half of a module's progress. A nil pointer on
// ModuleProgress means the quiz state is untouched; for modules without a
// quiz, video completion installs the auto-pass record so the uniform
// completion check needs no branching.
type QuizProgress struct {
	Completed bool `json:"completed"`
	Score     int  `json:"score"`
	Passed    bool `json:"passed"`
}

// ModuleProgress is the per-module completion state inside a record.
type ModuleProgress struct {
	ModuleID       string        `json:"moduleId"`
	VideoCompleted bool          `json:"videoCompleted"`
	Quiz           *QuizProgress `json:"quiz,omitempty"`
}

// Record is the durable progress state for one (user, course) pair.
// Entries are unique per module; a module never started has no entry.
// CurrentModuleIndex is the resume pointer, it plays no part in gating.
type Record struct {
	ModuleProgress     []ModuleProgress `json:"moduleProgress"`
	CurrentModuleIndex int              `json:"currentModuleIndex"`
}

// EmptyRecord returns the zero state handed out when neither store has data.
func EmptyRecord() Record {
	return Record{ModuleProgress: []ModuleProgress{}, CurrentModuleIndex: 0}
}

// IsEmpty reports whether the record holds no module entries. Emptiness, not
// recency, is what drives load-time reconciliation.
func (r Record) IsEmpty() bool {
	return len(r.ModuleProgress) == 0
}

// Find returns a pointer to the entry for moduleID, or nil if the module has
// not been started.
func (r *Record) Find(moduleID string) *ModuleProgress {
	for i := range r.ModuleProgress {
		if r.ModuleProgress[i].ModuleID == moduleID {
			return &r.ModuleProgress[i]
		}
	}
	return nil
}

// Encode serializes the record for the cache and the remote payload column.
func (r Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRecord parses a serialized record. Callers treat an error the same
// as absence of data.
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	if rec.ModuleProgress == nil {
		rec.ModuleProgress = []ModuleProgress{}
	}
	return rec, nil
}
