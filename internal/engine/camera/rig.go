package camera

// Rig owns one controller per mode and routes input to the active one.
type Rig struct {
	fly    *FlyThrough
	orbit  *Orbit
	active Mode
}

// NewRig creates a rig that starts in ModeFlyThrough.
func NewRig(fly *FlyThrough, orbit *Orbit) *Rig {
	return &Rig{fly: fly, orbit: orbit, active: ModeFlyThrough}
}

// SetMode switches the active controller. The inactive one keeps its state.
func (r *Rig) SetMode(m Mode) {
	if m == ModeOrbit {
		r.active = ModeOrbit
		return
	}
	r.active = ModeFlyThrough
}

// Mode returns the active mode.
func (r *Rig) Mode() Mode {
	return r.active
}

// Active returns the active controller.
func (r *Rig) Active() Controller {
	if r.active == ModeOrbit {
		return r.orbit
	}
	return r.fly
}

// FlyThrough returns the fly-through controller.
func (r *Rig) FlyThrough() *FlyThrough {
	return r.fly
}

// Orbit returns the orbit controller.
func (r *Rig) Orbit() *Orbit {
	return r.orbit
}

// Update forwards in to the active controller.
func (r *Rig) Update(in Input) (ViewParameters, error) {
	return r.Active().Update(in)
}

// View returns the active controller's view.
func (r *Rig) View() ViewParameters {
	return r.Active().View()
}

// PointerTracker turns absolute pointer positions into deltas. The Y
// delta is inverted so that moving the pointer up pitches the view up.
type PointerTracker struct {
	primed bool
	prevX  float64
	prevY  float64
}

// Delta records (x, y) and returns the movement since the previous call.
// The first call only primes the tracker and returns zero.
func (p *PointerTracker) Delta(x, y float64) (dx, dy float32) {
	if !p.primed {
		p.prevX, p.prevY = x, y
		p.primed = true
	}
	dx = float32(x - p.prevX)
	dy = float32(p.prevY - y)
	p.prevX, p.prevY = x, y
	return dx, dy
}

// Reset forgets the previous position, e.g. after the pointer was warped.
func (p *PointerTracker) Reset() {
	p.primed = false
}
