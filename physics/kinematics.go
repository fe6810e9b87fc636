package physics

// CarParams holds the shared motion constants for one simulation run.
// Every car in a run uses the same values so fitness stays comparable.
type CarParams struct {
	AccelFactor float32 // forward acceleration per unit throttle
	BrakeFactor float32 // instantaneous speed loss per unit brake input
	Friction    float32 // multiplicative speed decay per tick
	MaxSpeed    float32
	TurnRate    float32 // radians per second at full steering
}

// stopSpeed is the threshold below which speed snaps to zero.
const stopSpeed = 0.05

// CarState is the mutable motion state integrated each tick.
type CarState struct {
	Pos     Vec2
	Heading float32
	Speed   float32
	Vel     Vec2 // informational, derived from heading and speed
}

// IntegrateCar advances one car by dt seconds given its control inputs.
// Braking is applied as an instantaneous speed reduction rather than a
// time-scaled force; friction is a per-tick multiplicative decay. Speed
// never goes negative (no reverse gear). Returns the distance covered.
func IntegrateCar(st *CarState, steer, throttle, brake float32, p CarParams, dt float32) float32 {
	st.Heading = NormalizeAngle(st.Heading + steer*p.TurnRate*dt)

	st.Speed += throttle * p.AccelFactor * dt
	st.Speed -= brake * p.BrakeFactor

	if st.Speed < stopSpeed {
		st.Speed = 0
	}
	st.Speed *= p.Friction
	if st.Speed < 0 {
		st.Speed = 0
	}
	if st.Speed > p.MaxSpeed {
		st.Speed = p.MaxSpeed
	}

	dir := Heading(st.Heading)
	step := st.Speed * dt
	st.Pos.X += dir.X * step
	st.Pos.Y += dir.Y * step
	st.Vel = Vec2{X: dir.X * st.Speed, Y: dir.Y * st.Speed}

	return step
}
