package physics

import (
	"math"
	"testing"
)

func testParams() CarParams {
	return CarParams{
		AccelFactor: 2.0,
		BrakeFactor: 6.0,
		Friction:    0.90,
		MaxSpeed:    240,
		TurnRate:    3.0,
	}
}

func TestIntegrateCarAcceleration(t *testing.T) {
	p := testParams()
	st := CarState{Pos: Vec2{0, 0}, Heading: 0, Speed: 10}

	step := IntegrateCar(&st, 0, 1, 0, p, 0.1)

	// speed = (10 + 1*2*0.1) * 0.9 = 9.18
	want := float32((10 + 0.2) * 0.9)
	if !approxEq(st.Speed, want) {
		t.Errorf("Speed = %v, want %v", st.Speed, want)
	}
	if !approxEq(step, want*0.1) {
		t.Errorf("step = %v, want %v", step, want*0.1)
	}
	if !approxEq(st.Pos.X, want*0.1) || !approxEq(st.Pos.Y, 0) {
		t.Errorf("Pos = (%v,%v), want (%v,0)", st.Pos.X, st.Pos.Y, want*0.1)
	}
}

func TestIntegrateCarBrakeIsInstantaneous(t *testing.T) {
	p := testParams()
	st := CarState{Speed: 100}

	IntegrateCar(&st, 0, 0, 1, p, 0.1)

	// brake removes BrakeFactor regardless of dt: (100 - 6) * 0.9
	want := float32((100 - 6) * 0.9)
	if !approxEq(st.Speed, want) {
		t.Errorf("Speed = %v, want %v", st.Speed, want)
	}

	// Same brake with a different dt removes the same amount
	st2 := CarState{Speed: 100}
	IntegrateCar(&st2, 0, 0, 1, p, 0.01)
	if !approxEq(st2.Speed, want) {
		t.Errorf("Speed with smaller dt = %v, want %v", st2.Speed, want)
	}
}

func TestIntegrateCarNoReverse(t *testing.T) {
	p := testParams()
	st := CarState{Speed: 2}

	IntegrateCar(&st, 0, 0, 1, p, 0.1)
	if st.Speed != 0 {
		t.Errorf("Speed after over-braking = %v, want 0", st.Speed)
	}
	if st.Pos.X != 0 || st.Pos.Y != 0 {
		t.Errorf("stopped car moved to (%v,%v)", st.Pos.X, st.Pos.Y)
	}
}

func TestIntegrateCarStopSnap(t *testing.T) {
	p := testParams()
	st := CarState{Speed: 0.04}

	IntegrateCar(&st, 0, 0, 0, p, 0.1)
	if st.Speed != 0 {
		t.Errorf("Speed below threshold = %v, want snapped to 0", st.Speed)
	}
}

func TestIntegrateCarMaxSpeedClamp(t *testing.T) {
	p := testParams()
	p.Friction = 1.0
	st := CarState{Speed: p.MaxSpeed}

	IntegrateCar(&st, 0, 1, 0, p, 1.0)
	if st.Speed != p.MaxSpeed {
		t.Errorf("Speed = %v, want clamped to %v", st.Speed, p.MaxSpeed)
	}
}

func TestIntegrateCarSteering(t *testing.T) {
	p := testParams()
	st := CarState{Heading: 0, Speed: 0}

	IntegrateCar(&st, 1, 0, 0, p, 0.1)
	want := float32(1 * 3.0 * 0.1)
	if !approxEq(st.Heading, want) {
		t.Errorf("Heading = %v, want %v", st.Heading, want)
	}

	IntegrateCar(&st, -1, 0, 0, p, 0.1)
	if !approxEq(st.Heading, 0) {
		t.Errorf("Heading after counter-steer = %v, want 0", st.Heading)
	}
}

func TestIntegrateCarHeadingWraps(t *testing.T) {
	p := testParams()
	st := CarState{Heading: float32(math.Pi) - 0.01}

	IntegrateCar(&st, 1, 0, 0, p, 0.1)
	if st.Heading > float32(math.Pi) || st.Heading < -float32(math.Pi) {
		t.Errorf("Heading = %v, outside [-pi, pi]", st.Heading)
	}
}

func TestIntegrateCarVelocityMatchesHeading(t *testing.T) {
	p := testParams()
	p.Friction = 1.0
	st := CarState{Heading: float32(math.Pi / 2), Speed: 50}

	IntegrateCar(&st, 0, 0, 0, p, 0.1)
	if !approxEq(st.Vel.X, 0) || !approxEq(st.Vel.Y, 50) {
		t.Errorf("Vel = (%v,%v), want (0,50)", st.Vel.X, st.Vel.Y)
	}
}
