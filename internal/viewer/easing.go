package viewer

// EaseFunc maps linear progress in [0, 1] to eased progress.
type EaseFunc func(p float32) float32

// Linear is the identity easing.
func Linear(p float32) float32 {
	return p
}

// EaseInOutQuad accelerates through the first half and decelerates
// through the second, symmetric about 0.5.
func EaseInOutQuad(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	q := -2*p + 2
	return 1 - q*q/2
}
