package engine

import (
	"testing"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
)

func actorFixture(id string, speed int) *domain.Entity {
	return &domain.Entity{
		ID:     id,
		Type:   domain.EntityTypeEnemy,
		Stats:  &domain.StatsComponent{HP: 10, MaxHP: 10},
		Energy: &domain.EnergyComponent{Speed: speed, IsHostile: true},
	}
}

func TestScheduler_FairnessOverTenTicks(t *testing.T) {
	fast := actorFixture("fast", 2*domain.BaseSpeed)
	slow := actorFixture("slow", domain.BaseSpeed)

	s := NewScheduler()
	s.Add(fast)
	s.Add(slow)

	fastActs, slowActs := 0, 0
	for tick := 0; tick < 10; tick++ {
		s.Tick()
		for _, e := range []*domain.Entity{fast, slow} {
			for e.Energy.CanAct() {
				e.Energy.Spend()
				if e.ID == "fast" {
					fastActs++
				} else {
					slowActs++
				}
			}
		}
	}

	if fastActs != 2*slowActs {
		t.Errorf("over 10 ticks: fast acted %d, slow acted %d, want exact 2:1", fastActs, slowActs)
	}
}

func TestScheduler_ReadyAutonomousStableOrder(t *testing.T) {
	s := NewScheduler()
	a := actorFixture("a", domain.BaseSpeed)
	b := actorFixture("b", domain.BaseSpeed)
	c := actorFixture("c", domain.BaseSpeed)
	s.Add(a)
	s.Add(b)
	s.Add(c)

	s.Tick() // everyone ready in the same tick

	for run := 0; run < 5; run++ {
		ready := s.ReadyAutonomous("")
		if len(ready) != 3 {
			t.Fatalf("ready count = %d, want 3", len(ready))
		}
		for i, want := range []string{"a", "b", "c"} {
			if ready[i].ID != want {
				t.Fatalf("run %d: order = [%s %s %s], want [a b c]",
					run, ready[0].ID, ready[1].ID, ready[2].ID)
			}
		}
	}
}

func TestScheduler_ReadyAutonomousSkipsDeadAndExcluded(t *testing.T) {
	s := NewScheduler()
	a := actorFixture("a", domain.BaseSpeed)
	b := actorFixture("b", domain.BaseSpeed)
	hero := actorFixture("hero", domain.BaseSpeed)
	s.Add(a)
	s.Add(b)
	s.Add(hero)

	s.Tick()
	b.Stats.IsDead = true

	ready := s.ReadyAutonomous("hero")
	if len(ready) != 1 || ready[0].ID != "a" {
		t.Errorf("ready = %v, want just [a]", ids(ready))
	}
}

func TestScheduler_TickUntilReadySlowActor(t *testing.T) {
	s := NewScheduler()
	slow := actorFixture("slow", domain.BaseSpeed/2)
	bystander := actorFixture("bystander", domain.BaseSpeed)
	s.Add(slow)
	s.Add(bystander)

	ticks := s.TickUntilReady(slow)
	if ticks != 2 {
		t.Errorf("ticks = %d, want 2 for a half-speed actor", ticks)
	}
	if !slow.Energy.CanAct() {
		t.Error("target still cannot act after TickUntilReady")
	}
	// The bystander accumulated alongside.
	if bystander.Energy.Energy != 2*domain.BaseSpeed {
		t.Errorf("bystander energy = %d, want %d", bystander.Energy.Energy, 2*domain.BaseSpeed)
	}
}

func TestScheduler_RemoveKeepsOrder(t *testing.T) {
	s := NewScheduler()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Add(actorFixture(id, domain.BaseSpeed))
	}
	s.Remove("b")
	s.Tick()

	ready := s.ReadyAutonomous("")
	got := ids(ready)
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("ready = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ready = %v, want %v", got, want)
		}
	}
}

func ids(entities []*domain.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}
