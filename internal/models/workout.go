package models

import "time"

// Template is a reusable named workout definition.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Exercise is one movement within a template. Exercises are soft-deleted
// via Active=false and never removed from storage.
type Exercise struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	SetsReps   string    `json:"setsReps"`
	IsWeighted bool      `json:"isWeighted"`
	SortOrder  int       `json:"sortOrder"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session is one performed instance of a template. CompletedAt nil means
// the session is still in progress.
type Session struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"templateId"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes"`
}

// Completed reports whether the session has been finished.
func (s Session) Completed() bool {
	return s.CompletedAt != nil
}

// SetLog is one completed-or-pending set within an exercise log.
type SetLog struct {
	SetNumber   int        `json:"setNumber"`
	TargetReps  string     `json:"targetReps"`
	ActualReps  *int       `json:"actualReps"`
	Weight      *float64   `json:"weight"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// ExerciseLog records how one exercise went within one session. There is at
// most one log per (session, exercise) pair; its id is the deterministic
// composite of the two, so repeated creation cannot produce duplicates.
//
// WeightUsed is the summary weight of the most recently completed set,
// retained for logs written before per-set tracking existed. Sets is never
// nil on a hydrated log; legacy rows without set detail hydrate to an empty
// slice.
type ExerciseLog struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"sessionId"`
	ExerciseID  string     `json:"exerciseId"`
	Completed   bool       `json:"completed"`
	WeightUsed  *float64   `json:"weightUsed"`
	GoUp        bool       `json:"goUp"`
	CompletedAt *time.Time `json:"completedAt"`
	Sets        []SetLog   `json:"sets"`
}

// LogID derives the primary key for the (session, exercise) pair.
func LogID(sessionID, exerciseID string) string {
	return sessionID + "-" + exerciseID
}
