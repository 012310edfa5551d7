package xctid

// Interpolate computes the elementwise interpolation of two equal-length
// sequences at fraction f. f is nominally in [0,1] but is not validated;
// out-of-range values extrapolate. Inputs are never mutated and output order
// matches input order.
func Interpolate(from, to []Value, f float64) ([]Value, error) {
	if len(from) != len(to) {
		return nil, &MismatchError{From: from, To: to}
	}
	out := make([]Value, len(from))
	for i := range from {
		v, err := InterpolateNum(from[i], to[i], f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// InterpolateNum interpolates two scalar values. Numeric pairs blend
// linearly; boolean pairs select the nearer endpoint, with f == 0.5
// resolving to the "to" value. Mixed operands are rejected with a
// *TypeMismatchError.
func InterpolateNum(from, to Value, f float64) (Value, error) {
	switch a := from.(type) {
	case Num:
		b, ok := to.(Num)
		if !ok {
			break
		}
		return Num(float64(a)*(1-f) + float64(b)*f), nil
	case Bool:
		b, ok := to.(Bool)
		if !ok {
			break
		}
		if f < 0.5 {
			return a, nil
		}
		return b, nil
	}
	return nil, &TypeMismatchError{From: from, To: to}
}
