package qtable

import "math"

// Scale is the fixed-point unit: a stored value v represents v/Scale.
const Scale = 10_000

// MulScaled returns a*b/Scale. Go integer division truncates toward zero,
// which training relies on for bit-exact results. ok is false if a*b overflows.
func MulScaled(a, b int64) (int64, bool) {
	p, ok := mul(a, b)
	if !ok {
		return 0, false
	}
	return p / Scale, true
}

// TDUpdate computes one temporal-difference update:
//
//	target = reward + gamma*maxNextQ/Scale
//	newQ   = currentQ + alpha*(target-currentQ)/Scale
//
// ok is false when any intermediate value leaves the int64 range.
func TDUpdate(currentQ, reward, maxNextQ, alpha, gamma int64) (int64, bool) {
	discounted, ok := MulScaled(gamma, maxNextQ)
	if !ok {
		return 0, false
	}
	target, ok := add(reward, discounted)
	if !ok {
		return 0, false
	}
	tdError, ok := sub(target, currentQ)
	if !ok {
		return 0, false
	}
	step, ok := MulScaled(alpha, tdError)
	if !ok {
		return 0, false
	}
	return add(currentQ, step)
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return p, true
}

func add(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func sub(a, b int64) (int64, bool) {
	d := a - b
	if (b < 0 && d < a) || (b > 0 && d > a) {
		return 0, false
	}
	return d, true
}
