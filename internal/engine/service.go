package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/network"
	"github.com/dirkkok101/roguelike-sub009/internal/replay"
	"github.com/dirkkok101/roguelike-sub009/internal/storage"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
	"github.com/dirkkok101/roguelike-sub009/pkg/utils"
)

// GameService owns the running sessions and the persistence gateway.
// One session per connected client; each session serializes its own
// simulation, so the service only guards the session map.
type GameService struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg     Config
	gateway *storage.Gateway
	Hub     *network.Broadcaster
}

func NewService(cfg Config, gateway *storage.Gateway, hub *network.Broadcaster) *GameService {
	return &GameService{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		gateway:  gateway,
		Hub:      hub,
	}
}

// CreateSession starts a new game. An empty seed falls back to the
// configured master seed, then to a random one.
func (s *GameService) CreateSession(seed string) *Session {
	if seed == "" {
		seed = s.cfg.Game.Seed
	}
	if seed == "" {
		seed = utils.GenerateID()
	}
	sessionID := "sess_" + utils.GenerateID()

	sess := NewSession(sessionID, seed, s.cfg.Game.WinDepth)

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a running session, or nil.
func (s *GameService) Get(sessionID string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

// Drop removes a session from the running set without persisting it.
func (s *GameService) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// HandleClientCommand executes one client command against its session
// and returns the refreshed client view.
func (s *GameService) HandleClientCommand(sessionID string, cmd api.ClientCommand) (*api.ServerResponse, error) {
	sess := s.Get(sessionID)
	if sess == nil {
		return nil, fmt.Errorf("unknown session %q", sessionID)
	}

	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return nil, fmt.Errorf("unknown action %q", cmd.Action)
	}

	logs, err := sess.HandleCommand(domain.InternalCommand{
		Action:  action,
		Token:   cmd.Token,
		Payload: cmd.Payload,
	})
	if err != nil {
		return nil, err
	}
	return sess.BuildState(logs), nil
}

// SaveSession persists a session through the gateway. Persistence
// failure is not fatal to play: the in-memory log remains the source of
// truth, so the error degrades to a warning and play continues.
func (s *GameService) SaveSession(ctx context.Context, sessionID string) error {
	sess := s.Get(sessionID)
	if sess == nil {
		return fmt.Errorf("unknown session %q", sessionID)
	}

	end := sess.Snapshot()
	log := sess.Recorder().BuildLog(
		fmt.Sprintf("%s, depth %d, turn %d", sess.player.Name, end.Depth, end.Turn),
		end.Depth,
		sess.Outcome(),
	)

	if err := s.gateway.SaveGame(ctx, sessionID, end, log); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"session_id": sessionID,
		}).WithError(err).Warn("Save failed, continuing with in-memory log only")
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"records":    sess.Recorder().RecordCount(),
	}).Info("Session saved")
	return nil
}

// LoadSession resumes a saved session: the end snapshot becomes the live
// state and the stored replay log is restored into the recorder, so the
// whole history is still replayable from turn 0.
func (s *GameService) LoadSession(ctx context.Context, sessionID string) (*Session, error) {
	blob, err := s.gateway.LoadGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess, err := HydrateSession(sessionID, blob.EndSnapshot, s.cfg.Game.WinDepth)
	if err != nil {
		return nil, err
	}

	if blob.Replay != nil {
		sess.Recorder().StartSession(blob.Replay.StartSnapshot, sessionID)
		sess.Recorder().RestoreLog(blob.Replay.Records)
	} else {
		// No replay survived; recording restarts from the load point.
		sess.Recorder().StartSession(blob.EndSnapshot, sessionID)
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	logger.Log.WithField("session_id", sessionID).Info("Session resumed")
	return sess, nil
}

// ListReplays returns the stored replay index for the debug API.
func (s *GameService) ListReplays(ctx context.Context) ([]api.ReplayListEntry, error) {
	listings, err := s.gateway.ListReplays(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]api.ReplayListEntry, 0, len(listings))
	for _, l := range listings {
		out = append(out, api.ReplayListEntry{
			SessionID:   l.SessionID,
			DisplayName: l.Summary.DisplayName,
			CreatedAt:   l.Summary.CreatedAt,
			RecordCount: l.Summary.RecordCount,
			DepthAtEnd:  l.Summary.DepthAtEnd,
			Outcome:     l.Summary.Outcome,
		})
	}
	return out, nil
}

// VerifySession replays a stored session from its start snapshot and
// compares the reconstruction against the recorded end state. Zero
// mismatches means game logic still matches the recording.
func (s *GameService) VerifySession(ctx context.Context, sessionID string) (*api.VerifyResponse, error) {
	blob, err := s.gateway.LoadGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if blob.Replay == nil {
		return nil, fmt.Errorf("session %q has no stored replay", sessionID)
	}

	rc := replay.NewReconstructor(NewSimFactory(s.cfg.Game.WinDepth))
	reconstructed, err := rc.StateAt(blob.Replay, len(blob.Replay.Records))
	if err != nil {
		return nil, err
	}

	report := replay.Validate(reconstructed, blob.EndSnapshot)

	resp := &api.VerifyResponse{
		SessionID:  sessionID,
		Valid:      report.Valid,
		Records:    len(blob.Replay.Records),
		Mismatches: make([]api.DesyncView, 0, len(report.Mismatches)),
	}
	for _, m := range report.Mismatches {
		resp.Mismatches = append(resp.Mismatches, api.DesyncView{
			Turn:      m.Turn,
			FieldPath: m.FieldPath,
			Expected:  m.Expected,
			Actual:    m.Actual,
		})
	}

	if !report.Valid {
		logger.Log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"mismatches": len(report.Mismatches),
		}).Error("Replay verification found desyncs")
	}
	return resp, nil
}

// SaveAll persists every running session, used at shutdown.
func (s *GameService) SaveAll(ctx context.Context) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if err := s.SaveSession(ctx, id); err != nil {
			logger.Log.WithField("session_id", id).WithError(err).Warn("Shutdown save failed")
		}
	}
}
