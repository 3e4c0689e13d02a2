// SPDX-License-Identifier: Apache-2.0

// Package schema checks song drafts against the CUE definition of a
// saveable song.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/setlistkit/songimport/internal/song"
)

//go:embed song.cue
var songSchema string

// Problem is one field that does not satisfy the song schema.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	if p.Field == "" {
		return p.Message
	}
	return p.Field + ": " + p.Message
}

// Validator checks drafts against #Song. A cue.Context is not safe for
// concurrent use, so calls are serialised.
type Validator struct {
	mu   sync.Mutex
	ctx  *cue.Context
	song cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(songSchema, cue.Filename("song.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling song schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Song"))
	if !def.Exists() {
		return nil, fmt.Errorf("song schema has no #Song definition")
	}
	return &Validator{ctx: ctx, song: def}, nil
}

// Validate returns nil when d satisfies the schema, otherwise an error
// listing every violation.
func (v *Validator) Validate(d *song.Draft) error {
	if d == nil {
		return fmt.Errorf("no song data")
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	value := v.ctx.Encode(d)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	return v.song.Unify(value).Validate(cue.Concrete(true))
}

// Problems flattens the result of Validate into one entry per violation.
func (v *Validator) Problems(d *song.Draft) []Problem {
	err := v.Validate(d)
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []Problem{{Message: err.Error()}}
	}
	problems := make([]Problem, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		problems = append(problems, Problem{
			Field:   fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return problems
}

// fieldPath joins an error path, dropping the definition it was checked
// against.
func fieldPath(path []string) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		if strings.HasPrefix(p, "#") {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ".")
}

// Warnings renders Problems as human-readable lines.
func (v *Validator) Warnings(d *song.Draft) []string {
	problems := v.Problems(d)
	if len(problems) == 0 {
		return nil
	}
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.String()
	}
	return out
}
