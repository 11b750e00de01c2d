package movement

import "github.com/jakecoffman/cp"

// Material is the friction preset applied to the character collider.
type Material int

const (
	MaterialGrippy Material = iota
	MaterialSlippery
)

func (m Material) String() string {
	if m == MaterialSlippery {
		return "slippery"
	}
	return "grippy"
}

// Body is the single controllable rigid body owned by the physics backend.
type Body interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	// SetGravityScale scales world gravity for this body; 0 disables it.
	SetGravityScale(scale float64)
	// SetKinematic switches between physics-driven and script-driven motion.
	SetKinematic(kinematic bool)
	SetMaterial(m Material)
}

// deadline is an elapsed-time counter on the controller clock.
type deadline struct {
	at    float64
	armed bool
}

func (d *deadline) arm(now, after float64) {
	d.at = now + after
	d.armed = true
}

func (d *deadline) disarm() {
	d.armed = false
}

// pending reports an armed deadline that has not been reached yet.
func (d deadline) pending(now float64) bool {
	return d.armed && now < d.at
}

// reached reports an armed deadline whose time has come.
func (d deadline) reached(now float64) bool {
	return d.armed && now >= d.at
}
