package utils

// apply modifiers to value, in order.
//
// args:
//     - value: initial value
//     - modifier: functions which take value and return modified one
//
// returns:
//     value after modifier applied
func ApplyAll[T any](value *T, modifier ...func(*T) *T) *T {
	for _, mod := range modifier {
		value = mod(value)
	}
	return value
}
