package plan

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// schema holds the compiled plan schema. A cue.Context is not safe for
// concurrent use, so access is serialized.
type schema struct {
	mu    sync.Mutex
	ctx   *cue.Context
	plan  cue.Value
	run   cue.Value
	err   error
	ready bool
}

var planSchema schema

func (s *schema) load() error {
	if s.ready {
		return s.err
	}
	s.ready = true
	s.ctx = cuecontext.New()
	v := s.ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		s.err = fmt.Errorf("compiling plan schema: %w", err)
		return s.err
	}
	s.plan = v.LookupPath(cue.ParsePath("#Plan"))
	s.run = v.LookupPath(cue.ParsePath("#Run"))
	return nil
}

// check unifies x (encoded through its json tags) with the named definition
// and requires a concrete result.
func (s *schema) check(def string, x any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	target := s.plan
	if def == "#Run" {
		target = s.run
	}

	v := s.ctx.Encode(x)
	if err := v.Err(); err != nil {
		return firstCUEError(err)
	}
	if err := target.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return firstCUEError(err)
	}
	return nil
}

// firstCUEError reduces a CUE error list to its first entry.
func firstCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	return errs[0]
}
