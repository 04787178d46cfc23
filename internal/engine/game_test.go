package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/network"
	"github.com/dirkkok101/roguelike-sub009/internal/replay"
	"github.com/dirkkok101/roguelike-sub009/internal/storage"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
	"github.com/dirkkok101/roguelike-sub009/pkg/dungeon"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// testArena builds an open rectangular level with walls on the border.
func testArena(width, height int) *domain.GameWorld {
	tiles := make([][]domain.Tile, height)
	for y := range tiles {
		row := make([]domain.Tile, width)
		for x := range row {
			wall := x == 0 || y == 0 || x == width-1 || y == height-1
			row[x] = domain.Tile{X: x, Y: y, IsWall: wall, Env: "floor"}
		}
		tiles[y] = row
	}
	return domain.NewGameWorld(1, width, height, tiles)
}

// newTestSession wires a session around a hand-built level instead of a
// generated one.
func newTestSession(seed string, world *domain.GameWorld, playerPos domain.Position, npcs ...*domain.Entity) *Session {
	s := &Session{
		ID:       "sess_test",
		Seed:     seed,
		rng:      rng.NewLCG(seed),
		depth:    1,
		winDepth: 5,
		outcome:  domain.OutcomeOngoing,
		levels:   make(map[int]*levelState),
		recorder: replay.NewRecorder(),
		registry: buildRegistry(),
	}

	lvl := &levelState{world: world, sched: NewScheduler(), start: playerPos}
	for _, npc := range npcs {
		lvl.entities = append(lvl.entities, npc)
		world.RegisterEntity(npc)
		world.AddEntity(npc)
		lvl.sched.Add(npc)
	}
	s.levels[1] = lvl

	s.player = dungeon.CreatePlayer("hero_1", "Hero", playerPos)
	world.RegisterEntity(s.player)
	world.AddEntity(s.player)
	lvl.sched.Add(s.player)

	s.recorder.StartSession(s.buildSnapshot(), s.ID)
	return s
}

func goblinAt(id string, x, y int) *domain.Entity {
	return &domain.Entity{
		ID: id, Type: domain.EntityTypeEnemy, Name: "Goblin", Level: 1,
		Pos:    domain.Position{X: x, Y: y},
		Stats:  &domain.StatsComponent{HP: 10, MaxHP: 10, Strength: 4},
		Energy: &domain.EnergyComponent{Speed: domain.BaseSpeed, IsHostile: true},
	}
}

func moveCmd(dx, dy int) domain.InternalCommand {
	raw, _ := json.Marshal(api.DirectionPayload{Dx: dx, Dy: dy})
	return domain.InternalCommand{Action: domain.ActionMove, Token: "hero_1", Payload: raw}
}

func waitCmd() domain.InternalCommand {
	return domain.InternalCommand{Action: domain.ActionWait, Token: "hero_1"}
}

// A session recorded live must reconstruct to the identical end state:
// seed "canonical-seed-12345", 100 eastward moves from (10,5).
func TestSession_FullReplayEqualsLiveRun(t *testing.T) {
	s := newTestSession("canonical-seed-12345", testArena(130, 12), domain.Position{X: 10, Y: 5})
	if s.player.Stats.HP != 50 {
		t.Fatalf("start HP = %d, want 50", s.player.Stats.HP)
	}

	for i := 0; i < 100; i++ {
		if _, err := s.HandleCommand(moveCmd(1, 0)); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	if s.player.Pos.X != 110 || s.player.Pos.Y != 5 {
		t.Fatalf("live end pos = (%d,%d), want (110,5)", s.player.Pos.X, s.player.Pos.Y)
	}

	log := s.recorder.BuildLog("canonical", 1, s.outcome)
	if len(log.Records) != 100 {
		t.Fatalf("record count = %d, want 100", len(log.Records))
	}

	rc := replay.NewReconstructor(NewSimFactory(5))
	reconstructed, err := rc.StateAt(log, 100)
	if err != nil {
		t.Fatal(err)
	}

	if reconstructed.Player.Pos.X != 110 || reconstructed.Player.Pos.Y != 5 {
		t.Errorf("reconstructed pos = (%d,%d), want (110,5)",
			reconstructed.Player.Pos.X, reconstructed.Player.Pos.Y)
	}

	report := replay.Validate(reconstructed, s.Snapshot())
	if !report.Valid {
		t.Fatalf("desync between replay and live run: %+v", report.Mismatches)
	}
}

// Combat pulls randomness into both controlled attacks and autonomous
// decisions; the replay must still land on the identical state.
func TestSession_ReplayWithCombatAndAutonomousActors(t *testing.T) {
	s := newTestSession("combat-seed", testArena(30, 12),
		domain.Position{X: 10, Y: 5},
		goblinAt("goblin_1", 14, 5),
		goblinAt("goblin_2", 10, 8),
	)

	// March east into the goblins and let them fight back.
	for i := 0; i < 15; i++ {
		if _, err := s.HandleCommand(moveCmd(1, 0)); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if s.Outcome() != domain.OutcomeOngoing {
			break
		}
	}

	log := s.recorder.BuildLog("combat", 1, s.outcome)
	if len(log.Records) <= 15 {
		t.Fatalf("record count = %d, expected autonomous records beyond the 15 controlled ones", len(log.Records))
	}

	// Every autonomous record belongs to a goblin and carries its own
	// pinned RNG state.
	seenAutonomous := false
	for _, rec := range log.Records {
		if rec.Actor.Role == domain.RoleAutonomous {
			seenAutonomous = true
			if rec.Actor.ID != "goblin_1" && rec.Actor.ID != "goblin_2" {
				t.Errorf("autonomous record from unexpected actor %q", rec.Actor.ID)
			}
		}
		if rec.RngStateBefore == "" {
			t.Error("record missing rng state")
		}
	}
	if !seenAutonomous {
		t.Fatal("no autonomous records despite adjacent goblins")
	}

	rc := replay.NewReconstructor(NewSimFactory(5))
	reconstructed, err := rc.StateAt(log, len(log.Records))
	if err != nil {
		t.Fatal(err)
	}
	report := replay.Validate(reconstructed, s.Snapshot())
	if !report.Valid {
		t.Fatalf("combat replay desynced: %+v", report.Mismatches)
	}

	// Replaying is idempotent even with combat randomness.
	again, err := rc.StateAt(log, len(log.Records))
	if err != nil {
		t.Fatal(err)
	}
	if rep := replay.Validate(again, reconstructed); !rep.Valid {
		t.Fatalf("two reconstructions differ: %+v", rep.Mismatches)
	}
}

func TestSession_MalformedPayloadIsNotRecorded(t *testing.T) {
	s := newTestSession("precheck-seed", testArena(20, 10), domain.Position{X: 5, Y: 5})

	raw, _ := json.Marshal(api.DirectionPayload{Dx: 5, Dy: 0})
	_, err := s.HandleCommand(domain.InternalCommand{Action: domain.ActionMove, Payload: raw})
	if err == nil {
		t.Fatal("oversized move accepted")
	}
	if n := s.recorder.RecordCount(); n != 0 {
		t.Errorf("failed command was recorded, count = %d", n)
	}
	if s.Turn() != 0 {
		t.Errorf("failed command advanced the turn to %d", s.Turn())
	}
}

func TestSession_WallBumpIsARecordedNoOp(t *testing.T) {
	s := newTestSession("wall-seed", testArena(20, 10), domain.Position{X: 1, Y: 5})

	logs, err := s.HandleCommand(moveCmd(-1, 0)) // straight into the border wall
	if err != nil {
		t.Fatal(err)
	}
	if s.player.Pos.X != 1 {
		t.Error("player moved through a wall")
	}
	// The action was valid, so it costs the turn and lands in the log.
	if n := s.recorder.RecordCount(); n != 1 {
		t.Errorf("wall bump record count = %d, want 1", n)
	}
	if s.Turn() != 1 {
		t.Errorf("turn = %d, want 1 after a spent action", s.Turn())
	}
	if len(logs) == 0 {
		t.Error("wall bump produced no feedback message")
	}
}

func TestSession_FastActorActsTwicePerTurn(t *testing.T) {
	s := newTestSession("fast-seed", testArena(20, 10), domain.Position{X: 5, Y: 5})
	s.player.Energy.Speed = 2 * domain.BaseSpeed
	s.recorder.StartSession(s.buildSnapshot(), s.ID)

	if _, err := s.HandleCommand(waitCmd()); err != nil {
		t.Fatal(err)
	}
	if s.Turn() != 0 {
		t.Errorf("turn advanced after the first of two actions, turn = %d", s.Turn())
	}

	if _, err := s.HandleCommand(waitCmd()); err != nil {
		t.Fatal(err)
	}
	if s.Turn() != 1 {
		t.Errorf("turn = %d after the exhausting action, want 1", s.Turn())
	}
}

func TestSession_TamperedKindFailsReplay(t *testing.T) {
	s := newTestSession("tamper-seed", testArena(20, 10), domain.Position{X: 5, Y: 5})
	for i := 0; i < 3; i++ {
		if _, err := s.HandleCommand(waitCmd()); err != nil {
			t.Fatal(err)
		}
	}

	log := s.recorder.BuildLog("tampered", 1, s.outcome)
	log.Records[1].Kind = "SUMMON_DRAGON"

	rc := replay.NewReconstructor(NewSimFactory(5))
	state, err := rc.StateAt(log, 3)
	if !errors.Is(err, replay.ErrUnknownCommandKind) {
		t.Fatalf("err = %v, want ErrUnknownCommandKind", err)
	}
	if state != nil {
		t.Error("partial state returned on failed reconstruction")
	}
}

func TestNewSession_SameSeedSameStart(t *testing.T) {
	a := NewSession("sess_a", "twin-seed", 5)
	b := NewSession("sess_b", "twin-seed", 5)

	report := replay.Validate(a.Snapshot(), b.Snapshot())
	if !report.Valid {
		t.Fatalf("same seed produced different starts: %+v", report.Mismatches)
	}
}

func TestService_SaveResumeAndVerify(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	gateway := storage.NewGateway(storage.NewMemoryStore())
	svc := NewService(cfg, gateway, network.NewBroadcaster())

	sess := svc.CreateSession("service-seed")
	for i := 0; i < 10; i++ {
		if _, err := sess.HandleCommand(waitCmd()); err != nil {
			t.Fatal(err)
		}
	}
	endTurn := sess.Turn()

	if err := svc.SaveSession(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}

	// Stored session verifies clean against its own end state.
	verify, err := svc.VerifySession(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !verify.Valid {
		t.Fatalf("fresh save failed verification: %+v", verify.Mismatches)
	}

	// Resuming restores both the live state and the full log.
	svc.Drop(sess.ID)
	resumed, err := svc.LoadSession(ctx, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resumed.Turn() != endTurn {
		t.Errorf("resumed turn = %d, want %d", resumed.Turn(), endTurn)
	}
	if resumed.Recorder().RecordCount() == 0 {
		t.Error("resume lost the replay log")
	}

	// Play continues on the resumed session, appending to the same log.
	before := resumed.Recorder().RecordCount()
	if _, err := resumed.HandleCommand(waitCmd()); err != nil {
		t.Fatal(err)
	}
	if resumed.Recorder().RecordCount() <= before {
		t.Error("resumed session no longer records")
	}

	listings, err := svc.ListReplays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 1 || listings[0].SessionID != sess.ID {
		t.Errorf("listings = %+v, want exactly the saved session", listings)
	}
}
