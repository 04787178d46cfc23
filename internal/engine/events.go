package engine

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
)

// processEvent interprets an event returned by a handler. Events run
// inside the dispatched command, so a replay re-fires them at the exact
// same point.
func (s *Session) processEvent(eventData json.RawMessage) {
	var generic struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(eventData, &generic); err != nil {
		logger.Log.WithError(err).Error("Event parse failed")
		return
	}

	switch generic.Event {
	case "LEVEL_TRANSITION":
		s.handleLevelTransition(eventData)
	default:
		logger.Log.WithField("event", generic.Event).Warn("Unknown event type")
	}
}

// handleLevelTransition moves the player to another level, generating it
// on first visit. Generation is seeded from the session seed, so the
// level comes out identical on every run and replay.
func (s *Session) handleLevelTransition(eventData json.RawMessage) {
	var ev struct {
		TargetLevel int `json:"targetLevel"`
	}
	if err := json.Unmarshal(eventData, &ev); err != nil {
		logger.Log.WithError(err).Error("LEVEL_TRANSITION parse failed")
		return
	}
	if ev.TargetLevel == s.depth || ev.TargetLevel < 1 {
		return
	}

	oldLvl := s.levels[s.depth]
	oldLvl.world.RemoveEntity(s.player)
	oldLvl.world.UnregisterEntity(s.player.ID)
	oldLvl.sched.Remove(s.player.ID)

	newLvl, ok := s.levels[ev.TargetLevel]
	if !ok {
		newLvl = s.generateLevel(ev.TargetLevel)
		s.levels[ev.TargetLevel] = newLvl
	}

	s.depth = ev.TargetLevel
	s.player.Level = ev.TargetLevel
	s.player.Pos = newLvl.start
	newLvl.world.RegisterEntity(s.player)
	newLvl.world.AddEntity(s.player)
	newLvl.sched.Add(s.player)

	s.appendLog(fmt.Sprintf("%s descends to depth %d.", s.player.Name, ev.TargetLevel), "INFO")
	logger.Log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"depth":      ev.TargetLevel,
	}).Info("Level transition")

	if s.depth >= s.winDepth && s.outcome == domain.OutcomeOngoing {
		s.outcome = domain.OutcomeWon
		s.appendLog("You reach the bottom of the dungeon. You win!", "INFO")
	}
}
