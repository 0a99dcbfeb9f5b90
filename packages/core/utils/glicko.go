package utils

import "math"

// glickoScale converts between the public rating scale and the internal
// Glicko-2 scale.
const glickoScale = 173.7178

// Glicko2 implements the Glicko-2 rating system. Unlike Elo, ratings are
// updated once per rating period (a week of matches) rather than match by
// match, and each wrestler carries a rating deviation and volatility.
type Glicko2 struct {
	Tau           float64
	DefaultRating float64
	DefaultRD     float64
	DefaultVol    float64
}

func NewGlicko2() *Glicko2 {
	return &Glicko2{
		Tau:           0.5,
		DefaultRating: 1500,
		DefaultRD:     350,
		DefaultVol:    0.06,
	}
}

// GlickoOutcome is a single result within a rating period: the opponent's
// rating state and the score (1 for a win, 0 for a loss).
type GlickoOutcome struct {
	OpponentRating float64
	OpponentRD     float64
	Score          float64
}

func (gl *Glicko2) g(phi float64) float64 {
	return 1 / math.Sqrt(1+(3*phi*phi)/(math.Pi*math.Pi))
}

func (gl *Glicko2) e(mu, oppMu, oppPhi float64) float64 {
	return 1 / (1 + math.Exp(-gl.g(oppPhi)*(mu-oppMu)/400))
}

// UpdateRating folds a rating period's outcomes into a wrestler's rating,
// rating deviation and volatility. With no outcomes the inputs are returned
// unchanged.
func (gl *Glicko2) UpdateRating(rating, rd, vol float64, outcomes []GlickoOutcome) (float64, float64, float64) {
	if len(outcomes) == 0 {
		return rating, rd, vol
	}

	mu := (rating - gl.DefaultRating) / glickoScale
	phi := rd / glickoScale

	var vInv, delta float64
	for _, o := range outcomes {
		oppMu := (o.OpponentRating - gl.DefaultRating) / glickoScale
		oppPhi := o.OpponentRD / glickoScale
		gPhi := gl.g(oppPhi)
		e := gl.e(mu, oppMu, oppPhi)
		vInv += gPhi * gPhi * e * (1 - e)
		delta += gPhi * (o.Score - e)
	}

	var v float64
	if vInv != 0 {
		v = 1 / vInv
	}
	delta *= v

	a := math.Log(vol * vol)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2 * math.Pow(phi*phi+v+ex, 2)
		return (num / den) - ((x - a) / (gl.Tau * gl.Tau))
	}

	// Illinois-style iteration for the new volatility.
	const epsilon = 0.000001
	A := a
	var B float64
	if delta*delta > phi*phi+v {
		B = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k*gl.Tau) < 0 {
			k++
		}
		B = a - k*gl.Tau
	}

	fa := f(A)
	fb := f(B)
	for math.Abs(B-A) > epsilon {
		C := A + (A-B)*fa/(fb-fa)
		fc := f(C)
		if fc*fb < 0 {
			A = B
			fa = fb
		} else {
			fa = fa / 2
		}
		B = C
		fb = fc
	}

	newVol := math.Exp(A / 2)

	phiStar := math.Sqrt(phi*phi + newVol*newVol)
	newPhi := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	newMu := mu + newPhi*newPhi*delta

	return glickoScale*newMu + gl.DefaultRating, glickoScale * newPhi, newVol
}
