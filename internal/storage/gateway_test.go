package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/replay"
)

func snapshotFixture() *domain.Snapshot {
	return &domain.Snapshot{
		Seed:  "gw-seed",
		Turn:  12,
		Depth: 2,
		Player: domain.Entity{
			ID: "hero_1", Type: domain.EntityTypePlayer,
			Pos:   domain.Position{X: 4, Y: 4},
			Stats: &domain.StatsComponent{HP: 31, MaxHP: 50},
		},
		Levels: map[int]domain.LevelSnapshot{
			2: {Level: 2, Width: 1, Height: 1, Tiles: [][]domain.Tile{{{}}}},
		},
	}
}

func logFixture(records int) *replay.ReplayLog {
	log := &replay.ReplayLog{
		SessionID:     "sess_gw",
		FormatVersion: replay.CurrentFormatVersion,
		StartSnapshot: snapshotFixture(),
		Seed:          "gw-seed",
		Summary: replay.Summary{
			CreatedAt:   1700000000000,
			RecordCount: records,
			DisplayName: "Hero, depth 2",
			DepthAtEnd:  2,
			Outcome:     domain.OutcomeOngoing,
		},
	}
	for i := 0; i < records; i++ {
		log.Records = append(log.Records, replay.CommandRecord{
			Turn: i, Kind: "MOVE",
			Actor:          replay.ActorRef{Role: domain.RoleControlled, ID: "hero_1"},
			RngStateBefore: "42",
		})
	}
	return log
}

func TestGateway_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryStore())

	if err := g.SaveGame(ctx, "sess_gw", snapshotFixture(), logFixture(3)); err != nil {
		t.Fatal(err)
	}

	blob, err := g.LoadGame(ctx, "sess_gw")
	if err != nil {
		t.Fatal(err)
	}
	if blob.EndSnapshot.Turn != 12 || blob.EndSnapshot.Player.Stats.HP != 31 {
		t.Errorf("end snapshot did not round-trip: %+v", blob.EndSnapshot)
	}
	if blob.Replay == nil || len(blob.Replay.Records) != 3 {
		t.Fatalf("replay did not round-trip: %+v", blob.Replay)
	}
	if blob.Replay.Records[0].RngStateBefore != "42" {
		t.Error("record rng state lost in round trip")
	}
}

func TestGateway_ZeroRecordSessionNotListed(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryStore())

	if err := g.SaveGame(ctx, "sess_empty", snapshotFixture(), logFixture(0)); err != nil {
		t.Fatal(err)
	}

	// The save itself loads for resuming, but carries no replay.
	blob, err := g.LoadGame(ctx, "sess_empty")
	if err != nil {
		t.Fatal(err)
	}
	if blob.Replay != nil {
		t.Error("zero-record replay was persisted")
	}

	if _, err := g.LoadReplay(ctx, "sess_empty"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadReplay err = %v, want ErrNotFound", err)
	}

	listings, err := g.ListReplays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 0 {
		t.Errorf("zero-record session shows in replay listing: %+v", listings)
	}
}

func TestGateway_ForeignSaveVersionTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := NewGateway(store)

	raw, err := encodeBlob(SaveBlob{
		FormatVersion: 999,
		EndSnapshot:   snapshotFixture(),
		Replay:        logFixture(5),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, StoreSaves, "sess_v999", raw); err != nil {
		t.Fatal(err)
	}

	if _, err := g.LoadGame(ctx, "sess_v999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign version load err = %v, want ErrNotFound", err)
	}
}

func TestGateway_ForeignReplayVersionStripped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := NewGateway(store)

	log := logFixture(5)
	log.FormatVersion = 999
	raw, err := encodeBlob(SaveBlob{
		FormatVersion: CurrentSaveVersion,
		EndSnapshot:   snapshotFixture(),
		Replay:        log,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, StoreSaves, "sess_mixed", raw); err != nil {
		t.Fatal(err)
	}

	blob, err := g.LoadGame(ctx, "sess_mixed")
	if err != nil {
		t.Fatal(err)
	}
	if blob.Replay != nil {
		t.Error("foreign-version embedded replay survived the load")
	}
	if blob.EndSnapshot == nil {
		t.Error("valid save stripped along with its replay")
	}
}

func TestGateway_DeleteRemovesListing(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryStore())

	if err := g.SaveGame(ctx, "sess_del", snapshotFixture(), logFixture(2)); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteSave(ctx, "sess_del"); err != nil {
		t.Fatal(err)
	}

	if _, err := g.LoadGame(ctx, "sess_del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted save load err = %v, want ErrNotFound", err)
	}
	listings, err := g.ListReplays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 0 {
		t.Errorf("deleted session still listed: %+v", listings)
	}
}

func TestGateway_OverwriteReplacesListing(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemoryStore())

	if err := g.SaveGame(ctx, "sess_ow", snapshotFixture(), logFixture(2)); err != nil {
		t.Fatal(err)
	}
	// Saving again with an empty log clears the stale listing.
	if err := g.SaveGame(ctx, "sess_ow", snapshotFixture(), logFixture(0)); err != nil {
		t.Fatal(err)
	}

	listings, err := g.ListReplays(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 0 {
		t.Errorf("stale listing survived an overwrite: %+v", listings)
	}
}
