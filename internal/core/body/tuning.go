// Package body holds the rigid bodies of the play field: asteroids, the
// player's ship and its blasts. Bodies know how to advance themselves and how
// to resolve an interaction with another body; they never remove themselves
// from the world. Every interaction returns the new bodies and particles it
// produced and leaves insertion and removal to the caller.
package body

// Tuning carries the physical constants shared by all bodies of a level.
type Tuning struct {
	Elasticity      float64
	MinFragmentArea float64
	BlastMass       float64
	BlastRange      float64
	BlastSpeed      float64
	SpaceshipMass   float64
	BurstSpeed      float64
	BurstDistance   float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Elasticity:      0.9,
		MinFragmentArea: 400,
		BlastMass:       200,
		BlastRange:      1200,
		BlastSpeed:      800,
		SpaceshipMass:   300,
		BurstSpeed:      100,
		BurstDistance:   50,
	}
}
