package validate

// Specificity scores how far a type sits from the root of the Schema.org
// hierarchy, given the length of its ancestor chain.
func Specificity(parents int) int {
	switch {
	case parents >= 3:
		return 10
	case parents == 2:
		return 7
	case parents == 1:
		return 4
	default:
		return 1
	}
}
