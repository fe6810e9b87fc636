package engine

import (
	"testing"
)

func TestManualCarLifecycle(t *testing.T) {
	eng := newTestEngine(t, 20)

	if snap := eng.Snapshot(); snap.Manual != nil {
		t.Fatal("no manual car should exist before StartManualRace")
	}

	eng.StartManualRace()
	snap := eng.Snapshot()
	if snap.Manual == nil {
		t.Fatal("manual car missing from snapshot")
	}
	if !snap.Manual.Manual {
		t.Error("manual snapshot should be flagged as manual")
	}
	if !snap.Manual.Alive {
		t.Error("manual car should spawn alive")
	}
	if snap.Manual.Pos != testTrack().StartPos {
		t.Error("manual car should spawn at the start pose")
	}

	// The manual car never joins the population.
	if len(snap.Cars) != 6 {
		t.Errorf("population has %d cars with a manual car present, want 6", len(snap.Cars))
	}
	for _, c := range snap.Cars {
		if c.ID == snap.Manual.ID {
			t.Error("manual car leaked into the population list")
		}
	}

	eng.RemoveManualVehicle()
	if snap := eng.Snapshot(); snap.Manual != nil {
		t.Error("manual car still present after removal")
	}

	// Removing twice is harmless.
	eng.RemoveManualVehicle()
}

func TestManualCarDrives(t *testing.T) {
	eng := newTestEngine(t, 21)
	eng.StartManualRace()

	eng.UpdateManualCar(ManualControls{Forward: true})
	for i := 0; i < 60; i++ {
		eng.step(1.0 / 60.0)
	}

	snap := eng.Snapshot()
	if snap.Manual == nil {
		t.Fatal("manual car missing")
	}
	startX := testTrack().StartPos.X
	if snap.Manual.Pos.X <= startX {
		t.Errorf("manual car X = %v, want movement past %v under throttle", snap.Manual.Pos.X, startX)
	}
	if snap.Manual.Speed <= 0 {
		t.Errorf("manual car speed = %v, want positive", snap.Manual.Speed)
	}
	if snap.Manual.Distance <= 0 {
		t.Errorf("manual car distance = %v, want positive", snap.Manual.Distance)
	}

	// Releasing the key coasts the car down.
	eng.UpdateManualCar(ManualControls{})
	for i := 0; i < 120; i++ {
		eng.step(1.0 / 60.0)
	}
	snap = eng.Snapshot()
	if snap.Manual.Speed != 0 {
		t.Errorf("manual car speed = %v, want 0 after coasting", snap.Manual.Speed)
	}
}

func TestManualCarExcludedFromAggregates(t *testing.T) {
	eng := newTestEngine(t, 22)
	eng.StartManualRace()

	// Kill the whole population; the manual car alone must not keep the
	// generation open.
	for _, ent := range carEntities(eng) {
		eng.progressMap.Get(ent).Alive = false
	}
	eng.step(0.001)

	if eng.Generation() != 2 {
		t.Errorf("Generation = %d, want 2; the manual car must not count as alive", eng.Generation())
	}

	// The manual car survives the rollover.
	snap := eng.Snapshot()
	if snap.Manual == nil {
		t.Error("manual car lost across generation rollover")
	}

	for _, c := range eng.AliveCars() {
		if c.Manual {
			t.Error("AliveCars included the manual car")
		}
	}
}

func TestManualCarRestart(t *testing.T) {
	eng := newTestEngine(t, 23)
	eng.StartManualRace()

	eng.UpdateManualCar(ManualControls{Forward: true})
	for i := 0; i < 60; i++ {
		eng.step(1.0 / 60.0)
	}
	first := eng.Snapshot().Manual.ID

	// Starting again resets the existing car instead of spawning another.
	eng.StartManualRace()
	snap := eng.Snapshot()
	if snap.Manual.ID != first {
		t.Error("StartManualRace should reuse the existing manual car")
	}
	if snap.Manual.Pos != testTrack().StartPos {
		t.Error("manual car should reset to the start pose")
	}
	if snap.Manual.Speed != 0 || snap.Manual.Distance != 0 {
		t.Error("manual car physics should reset")
	}
}
