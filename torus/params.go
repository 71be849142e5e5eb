package torus

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("torus: invalid params")

// Params fixes the torus geometry, sampling density and grid size.
type Params struct {
	R1 float64 // tube radius
	R2 float64 // revolution radius
	K2 float64 // viewer distance, added to z

	ThetaStep float64
	PhiStep   float64

	Width  int
	Height int
}

// DefaultParams returns the 20x20 grid setup.
func DefaultParams() Params {
	return Params{
		R1:        10,
		R2:        20,
		K2:        200,
		ThetaStep: 0.1,
		PhiStep:   0.03,
		Width:     20,
		Height:    20,
	}
}

// Validate checks that z stays positive for every sample and that the grid is usable.
func (p Params) Validate() error {
	switch {
	case p.R1 <= 0:
		return fmt.Errorf("%w: R1=%g must be positive", ErrInvalidParams, p.R1)
	case p.R2 <= p.R1:
		return fmt.Errorf("%w: R2=%g must exceed R1=%g", ErrInvalidParams, p.R2, p.R1)
	case p.K2 <= p.R1+p.R2:
		return fmt.Errorf("%w: K2=%g must exceed R1+R2=%g", ErrInvalidParams, p.K2, p.R1+p.R2)
	case p.ThetaStep <= 0 || p.PhiStep <= 0:
		return fmt.Errorf("%w: steps must be positive", ErrInvalidParams)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	return nil
}

// K1 is the projection scale. The outer edge of the torus (x = R1+R2, z = K2)
// lands 3/8 of the grid height away from the center.
func (p Params) K1() float64 {
	return float64(p.Height) * p.K2 * 3 / (8 * (p.R1 + p.R2))
}
