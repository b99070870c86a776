package svm

import "math"

// plattCalibrate fits the sigmoid P(y=1|f) = 1 / (1 + exp(A*f + B)) to the
// training decision values by regularized maximum likelihood, following
// Platt's Newton method with backtracking line search. ys holds signed
// targets (-1/+1).
func plattCalibrate(decisions, ys []float64) (a, b float64) {
	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12 // Hessian ridge
		epsStop = 1e-5
	)

	var prior0, prior1 float64
	for _, y := range ys {
		if y > 0 {
			prior1++
		} else {
			prior0++
		}
	}

	hiTarget := (prior1 + 1) / (prior1 + 2)
	loTarget := 1 / (prior0 + 2)

	n := len(decisions)
	targets := make([]float64, n)
	for i, y := range ys {
		if y > 0 {
			targets[i] = hiTarget
		} else {
			targets[i] = loTarget
		}
	}

	a = 0
	b = math.Log((prior0 + 1) / (prior1 + 1))
	fval := plattObjective(decisions, targets, a, b)

	for iter := 0; iter < maxIter; iter++ {
		h11, h22 := sigma, sigma
		var h21, g1, g2 float64

		for i := 0; i < n; i++ {
			fApB := decisions[i]*a + b
			var p, q float64
			if fApB >= 0 {
				p = math.Exp(-fApB) / (1 + math.Exp(-fApB))
				q = 1 / (1 + math.Exp(-fApB))
			} else {
				p = 1 / (1 + math.Exp(fApB))
				q = math.Exp(fApB) / (1 + math.Exp(fApB))
			}
			d2 := p * q
			h11 += decisions[i] * decisions[i] * d2
			h22 += d2
			h21 += decisions[i] * d2
			d1 := targets[i] - p
			g1 += decisions[i] * d1
			g2 += d1
		}

		if math.Abs(g1) < epsStop && math.Abs(g2) < epsStop {
			break
		}

		// Newton direction.
		det := h11*h22 - h21*h21
		dA := -(h22*g1 - h21*g2) / det
		dB := -(h11*g2 - h21*g1) / det
		gd := g1*dA + g2*dB

		stepsize := 1.0
		for stepsize >= minStep {
			newA := a + stepsize*dA
			newB := b + stepsize*dB
			newF := plattObjective(decisions, targets, newA, newB)
			if newF < fval+1e-4*stepsize*gd {
				a, b, fval = newA, newB, newF
				break
			}
			stepsize /= 2
		}
		if stepsize < minStep {
			break
		}
	}

	return a, b
}

// plattObjective evaluates the cross-entropy of the sigmoid fit in a
// numerically stable form.
func plattObjective(decisions, targets []float64, a, b float64) float64 {
	var fval float64
	for i := range decisions {
		fApB := decisions[i]*a + b
		if fApB >= 0 {
			fval += targets[i]*fApB + math.Log(1+math.Exp(-fApB))
		} else {
			fval += (targets[i]-1)*fApB + math.Log(1+math.Exp(fApB))
		}
	}
	return fval
}

// sigmoidPredict maps a decision value to P(y=classes[1]) using the fitted
// Platt parameters.
func sigmoidPredict(decision, a, b float64) float64 {
	fApB := decision*a + b
	if fApB >= 0 {
		return math.Exp(-fApB) / (1 + math.Exp(-fApB))
	}
	return 1 / (1 + math.Exp(fApB))
}
