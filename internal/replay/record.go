package replay

import (
	"encoding/json"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
)

// CurrentFormatVersion is the on-disk replay format this build reads and
// writes. A stored log with any other version is rejected wholesale.
const CurrentFormatVersion = 1

// ActorRef identifies who issued a recorded command.
type ActorRef struct {
	// Role is either domain.RoleControlled or domain.RoleAutonomous.
	Role string `json:"role"`
	ID   string `json:"id,omitempty"`
}

// CommandRecord is one logged action. Immutable once appended: it carries
// the RNG state as it stood BEFORE the action consumed any randomness,
// which is what makes the action redoable.
type CommandRecord struct {
	Turn      int             `json:"turnNumber"`
	Timestamp int64           `json:"timestamp"`
	Kind      string          `json:"kind"`
	Actor     ActorRef        `json:"actor"`
	Payload   json.RawMessage `json:"payload,omitempty"`

	RngStateBefore string `json:"rngStateBefore"`
}

// Clone returns a copy that shares no mutable bytes with the original.
func (r CommandRecord) Clone() CommandRecord {
	out := r
	if r.Payload != nil {
		out.Payload = make(json.RawMessage, len(r.Payload))
		copy(out.Payload, r.Payload)
	}
	return out
}

// Summary is the lightweight metadata shown in replay listings without
// loading the full log.
type Summary struct {
	CreatedAt   int64  `json:"createdAt"`
	RecordCount int    `json:"recordCount"`
	DisplayName string `json:"displayName"`
	DepthAtEnd  int    `json:"depthAtEnd"`
	Outcome     string `json:"outcome"` // domain.Outcome* value
}

// ReplayLog is the full persisted record of a session: the starting
// snapshot plus every command in append order. Records are never
// reordered or edited in place.
type ReplayLog struct {
	SessionID     string           `json:"sessionId"`
	FormatVersion int              `json:"formatVersion"`
	StartSnapshot *domain.Snapshot `json:"startSnapshot"`
	Seed          string           `json:"seed"`
	Records       []CommandRecord  `json:"records"`
	Summary       Summary          `json:"summary"`
}

// Clone returns a deep copy of the log.
func (l *ReplayLog) Clone() *ReplayLog {
	if l == nil {
		return nil
	}
	out := *l
	out.StartSnapshot = l.StartSnapshot.Clone()
	out.Records = cloneRecords(l.Records)
	return &out
}

func cloneRecords(records []CommandRecord) []CommandRecord {
	out := make([]CommandRecord, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}
