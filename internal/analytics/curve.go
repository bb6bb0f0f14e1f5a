package analytics

import "math"

// Default 3PL parameters for the item-characteristic curve. Items in the
// bank are four-option multiple choice, hence the 0.25 guessing floor.
const (
	DefaultGuessing       = 0.25
	DefaultDiscrimination = 1.2

	// ThetaMin and ThetaMax bound the ability domain used for curves and
	// radar normalization.
	ThetaMin = -3.0
	ThetaMax = 3.0

	// CurveStep is the x spacing of generated curve points.
	CurveStep = 0.1
)

// CurvePoint is one sample of an item-characteristic curve.
type CurvePoint struct {
	// X is the ability value the point was sampled at.
	X float64
	// P is the probability of a correct response at that ability.
	P float64
}

// CurveOptions configures ICC generation. The zero value is not useful;
// start from DefaultCurveOptions.
type CurveOptions struct {
	Guessing       float64
	Discrimination float64
	XMin           float64
	XMax           float64
	Step           float64
}

// DefaultCurveOptions returns the standard 3PL configuration over [-3, 3].
func DefaultCurveOptions() CurveOptions {
	return CurveOptions{
		Guessing:       DefaultGuessing,
		Discrimination: DefaultDiscrimination,
		XMin:           ThetaMin,
		XMax:           ThetaMax,
		Step:           CurveStep,
	}
}

// ICC samples the item-characteristic curve for an item whose difficulty
// equals theta:
//
//	p(x) = guessing + (1 - guessing) / (1 + e^(-discrimination * (x - theta)))
//
// The result is ordered and strictly increasing in x. At x == theta the
// probability is guessing + (1-guessing)/2 (0.625 with defaults).
func ICC(theta float64, opts CurveOptions) []CurvePoint {
	if opts.Step <= 0 || opts.XMax < opts.XMin {
		return nil
	}

	n := int(math.Round((opts.XMax-opts.XMin)/opts.Step)) + 1
	points := make([]CurvePoint, 0, n)
	for i := 0; i < n; i++ {
		x := opts.XMin + float64(i)*opts.Step
		p := opts.Guessing + (1-opts.Guessing)/(1+math.Exp(-opts.Discrimination*(x-theta)))
		points = append(points, CurvePoint{X: x, P: p})
	}
	return points
}
