package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/replay"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

// CurrentSaveVersion is the outer save format. The replay log carries
// its own version inside; a save of the wrong outer version invalidates
// the embedded replay along with everything else.
const CurrentSaveVersion = 1

// SaveBlob is the persisted record for one session: the end-of-session
// state for resuming, with the replay log embedded alongside.
type SaveBlob struct {
	FormatVersion int              `json:"formatVersion"`
	SavedAt       int64            `json:"savedAt"`
	EndSnapshot   *domain.Snapshot `json:"endSnapshot"`
	Replay        *replay.ReplayLog `json:"replay,omitempty"`
}

// ReplayListing is one row of the saved-replay index.
type ReplayListing struct {
	SessionID string         `json:"sessionId"`
	Summary   replay.Summary `json:"summary"`
}

// Gateway enforces the persistence policy over a BlobStore: versioned
// blobs, fail-closed reads, and the zero-record rule.
type Gateway struct {
	store BlobStore
}

func NewGateway(store BlobStore) *Gateway {
	return &Gateway{store: store}
}

// SaveGame persists a session. A log with no records is not replayable
// and is dropped rather than stored as a degenerate replay.
func (g *Gateway) SaveGame(ctx context.Context, sessionID string, end *domain.Snapshot, log *replay.ReplayLog) error {
	if log != nil && len(log.Records) == 0 {
		logger.Log.WithField("session_id", sessionID).
			Warn("Gateway: zero-record session, replay omitted from save")
		log = nil
	}

	blob := SaveBlob{
		FormatVersion: CurrentSaveVersion,
		SavedAt:       time.Now().UnixMilli(),
		EndSnapshot:   end,
		Replay:        log,
	}
	raw, err := encodeBlob(blob)
	if err != nil {
		return err
	}
	if err := g.store.Put(ctx, StoreSaves, sessionID, raw); err != nil {
		return err
	}

	if log == nil {
		// No replay entry for this save; drop any stale index row.
		return g.store.Delete(ctx, StoreReplays, sessionID)
	}

	idx, err := encodeBlob(ReplayListing{SessionID: sessionID, Summary: log.Summary})
	if err != nil {
		return err
	}
	return g.store.Put(ctx, StoreReplays, sessionID, idx)
}

// LoadGame reads a save back. A blob with a foreign format version is
// treated as absent: the gateway refuses to guess its shape.
func (g *Gateway) LoadGame(ctx context.Context, sessionID string) (*SaveBlob, error) {
	raw, err := g.store.Get(ctx, StoreSaves, sessionID)
	if err != nil {
		return nil, err
	}

	var blob SaveBlob
	if err := decodeBlob(raw, &blob); err != nil {
		return nil, err
	}

	if blob.FormatVersion != CurrentSaveVersion {
		logger.Log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"version":    blob.FormatVersion,
			"expected":   CurrentSaveVersion,
		}).Warn("Gateway: save has foreign format version, treating as not found")
		return nil, ErrNotFound
	}

	// The embedded replay is versioned independently; a foreign replay
	// is stripped while the save itself stays loadable.
	if blob.Replay != nil && blob.Replay.FormatVersion != replay.CurrentFormatVersion {
		logger.Log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"version":    blob.Replay.FormatVersion,
			"expected":   replay.CurrentFormatVersion,
		}).Warn("Gateway: embedded replay has foreign format version, dropping it")
		blob.Replay = nil
	}

	return &blob, nil
}

// LoadReplay returns the replay log embedded in a save, or ErrNotFound
// when the save is missing, foreign-versioned, or carries no replay.
func (g *Gateway) LoadReplay(ctx context.Context, sessionID string) (*replay.ReplayLog, error) {
	blob, err := g.LoadGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if blob.Replay == nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	return blob.Replay, nil
}

// DeleteSave removes a save and its replay index row. This is the only
// way a replay log is ever destroyed.
func (g *Gateway) DeleteSave(ctx context.Context, sessionID string) error {
	if err := g.store.Delete(ctx, StoreSaves, sessionID); err != nil {
		return err
	}
	return g.store.Delete(ctx, StoreReplays, sessionID)
}

// ListReplays returns the index of sessions that have a stored replay.
func (g *Gateway) ListReplays(ctx context.Context) ([]ReplayListing, error) {
	keys, err := g.store.ListKeys(ctx, StoreReplays)
	if err != nil {
		return nil, err
	}

	listings := make([]ReplayListing, 0, len(keys))
	for _, key := range keys {
		raw, err := g.store.Get(ctx, StoreReplays, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		var l ReplayListing
		if err := decodeBlob(raw, &l); err != nil {
			logger.Log.WithField("session_id", key).WithError(err).
				Warn("Gateway: unreadable replay index row, skipping")
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}
