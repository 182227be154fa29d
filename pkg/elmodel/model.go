// Package elmodel holds the parsed form of the EL expressions in a document
// and answers which invocation encloses a cursor offset.
//
// A Model is built once per parse pass and never changed afterwards; a
// re-parse produces a new Model. Everything here is therefore safe for
// concurrent readers.
package elmodel

import (
	"slices"

	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Invocation is one call or property access step in a chained expression.
// Start and End are both inclusive. Left is the base of the step, e.g. in
// a.b().c() the left of c() is b().
type Invocation struct {
	name  string
	start int
	end   int
	left  *Invocation
}

// NewInvocation creates an invocation step. The left step must already exist,
// which keeps left chains finite and acyclic.
func NewInvocation(name string, start, end int, left *Invocation) *Invocation {
	return &Invocation{name: name, start: start, end: end, left: left}
}

func (me *Invocation) Name() string { return me.name }
func (me *Invocation) StartPosition() int { return me.start }
func (me *Invocation) EndPosition() int { return me.end }
func (me *Invocation) Left() *Invocation { return me.left }

// Contains reports whether offset lies within [start, end].
func (me *Invocation) Contains(offset int) bool {
	return me.start <= offset && offset <= me.end
}

// Chain returns the left chain from the root up to and including me.
func (me *Invocation) Chain() []*Invocation {
	var chain []*Invocation
	for inv := me; inv != nil; inv = inv.left {
		chain = append(chain, inv)
	}
	slices.Reverse(chain)
	return chain
}

// Expression is the parsed content of one instance.
type Expression struct {
	firstToken  tokenizer.Token
	invocations []*Invocation
}

// NewExpression keeps the invocations in the given order.
func NewExpression(firstToken tokenizer.Token, invocations ...*Invocation) *Expression {
	return &Expression{
		firstToken:  firstToken,
		invocations: slices.Clone(invocations),
	}
}

func (me *Expression) FirstToken() tokenizer.Token { return me.firstToken }

func (me *Expression) Invocations() []*Invocation {
	return slices.Clone(me.invocations)
}

// Instance is one EL occurrence in a document, e.g. the whole "#{...}".
type Instance struct {
	start      int
	end        int
	expression *Expression
}

// NewInstance creates an instance; expression may be nil when nothing was parsed.
func NewInstance(start, end int, expression *Expression) *Instance {
	return &Instance{start: start, end: end, expression: expression}
}

func (me *Instance) Start() int { return me.start }
func (me *Instance) End() int { return me.end }
func (me *Instance) Expression() *Expression { return me.expression }

// Model is the ordered set of instances of one document.
type Model struct {
	instances []*Instance
}

func NewModel(instances ...*Instance) *Model {
	return &Model{instances: slices.Clone(instances)}
}

func (me *Model) Instances() []*Instance {
	if me == nil {
		return nil
	}
	return slices.Clone(me.instances)
}

// Validate checks the structural invariants of the model. Overlap between
// instances is left to whoever built the model.
func (me *Model) Validate() error {
	var errs error
	for i, inst := range me.Instances() {
		if inst == nil {
			errs = multierr.Append(errs, errors.Errorf("instance %d: nil", i))
			continue
		}
		if inst.start > inst.end {
			errs = multierr.Append(errs, errors.Errorf("instance %d: start %d after end %d", i, inst.start, inst.end))
		}
		if inst.expression == nil {
			continue
		}
		errs = multierr.Append(errs, validateExpression(i, inst.expression))
	}
	return errs
}

func validateExpression(instance int, expr *Expression) error {
	var errs error
	for j, inv := range expr.invocations {
		if inv == nil {
			errs = multierr.Append(errs, errors.Errorf("instance %d, invocation %d: nil", instance, j))
			continue
		}
		if inv.start > inv.end {
			errs = multierr.Append(errs, errors.Errorf("instance %d, invocation %d: start %d after end %d", instance, j, inv.start, inv.end))
		}
		if inv.start < expr.firstToken.Start {
			errs = multierr.Append(errs, errors.Errorf("instance %d, invocation %d: starts at %d before the expression at %d", instance, j, inv.start, expr.firstToken.Start))
		}
		if inv.left == nil {
			continue
		}
		if !slices.Contains(expr.invocations[:j], inv.left) {
			errs = multierr.Append(errs, errors.Errorf("instance %d, invocation %d: left is not an earlier invocation of the same expression", instance, j))
		}
		if inv.left.end > inv.end {
			errs = multierr.Append(errs, errors.Errorf("instance %d, invocation %d: left ends at %d after %d", instance, j, inv.left.end, inv.end))
		}
	}
	return errs
}
