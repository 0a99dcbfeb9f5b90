package models

// WeightClasses is the fixed set of NCAA weight classes (in pounds).
var WeightClasses = []int{125, 133, 141, 149, 157, 165, 174, 184, 197, 285}

// IsValidWeightClass reports whether the given weight is one of the
// recognized weight classes.
func IsValidWeightClass(weight int) bool {
	for _, w := range WeightClasses {
		if w == weight {
			return true
		}
	}
	return false
}
