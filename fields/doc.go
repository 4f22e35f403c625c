// Package fields holds the analytic probability fields and update rules used
// by the named map presets, and the named map sizes.
//
// A preset is an ordered table of state definitions. Initial fields are pure
// functions of (dimensions, point); update rules are pure functions of a
// propagated signal returning a multiplicative factor:
//
//	1    neutral, the receiving weight is unchanged
//	0    the state is ruled out for the receiving cell
//	>1   the state is reinforced
//
// Presets:
//
//   - simple:                 ground mound under an exponential sky.
//   - edge:                   ground/edge/sky trio ringing the map border.
//   - ground-only:            every cell forced to ground at initialization.
//   - initial-weights-error:  no state has mass anywhere (configuration error).
//   - contradiction:          every signal rules out every state.
//
// Sizes: test-one 1³, small 10³, medium 20³, large 30³.
package fields
