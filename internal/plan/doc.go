// Package plan loads benchmark plan files: several matrix configurations
// run back to back under one name.
//
// # Plan Format
//
// Plans are YAML files:
//
//	name: locality-sweep
//	description: "Row vs column cost as the matrix outgrows each cache level"
//	defaults:
//	  iterations: 10
//	  align_repeats: 5
//	runs:
//	  - size: 64
//	  - size: 1024
//	  - size: 4096
//	    iterations: 3
//
// Every run inherits unset fields from defaults. After merging, each run must
// name a size and an iteration count.
//
// # Validation
//
// Decoding is strict: unknown keys are rejected so typos such as
// "iteration:" fail loudly. The decoded plan and every resolved run are then
// unified with an embedded CUE schema (schema.cue), which carries the value
// bounds: positive sizes no larger than 46340, positive iteration and repeat
// counts, and power-of-two cache-line sizes.
package plan
