package elmodel

import (
	"bytes"
	"io"

	"github.com/spf13/afero"
	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📦 Description is the serialized form of a model, produced by an external
// EL parser. YAML and JSON are both accepted.
type Description struct {
	Instances []InstanceDescription `yaml:"instances" json:"instances"`
}

type InstanceDescription struct {
	Start      int                    `yaml:"start" json:"start"`
	End        int                    `yaml:"end" json:"end"`
	Expression *ExpressionDescription `yaml:"expression,omitempty" json:"expression,omitempty"`
}

type ExpressionDescription struct {
	// FirstToken is the start offset of the expression's first token
	FirstToken  int                     `yaml:"first_token" json:"first_token"`
	Invocations []InvocationDescription `yaml:"invocations" json:"invocations"`
}

type InvocationDescription struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Start int    `yaml:"start" json:"start"`
	End   int    `yaml:"end" json:"end"`
	// Left indexes an earlier invocation of the same expression
	Left *int `yaml:"left,omitempty" json:"left,omitempty"`
}

// 📝 ParseDescription decodes a description with strict field checking.
func ParseDescription(data []byte) (*Description, error) {
	var desc Description
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return &desc, nil
		}
		return nil, errors.Errorf("parsing model description: %w", err)
	}
	return &desc, nil
}

// 🏗️ Build turns the description into a validated model. When tokens are
// given, the first token of each expression is taken from them.
func (me *Description) Build(tokens []tokenizer.Token) (*Model, error) {
	instances := make([]*Instance, 0, len(me.Instances))

	for i, inst := range me.Instances {
		if inst.Expression == nil {
			instances = append(instances, NewInstance(inst.Start, inst.End, nil))
			continue
		}

		invocations := make([]*Invocation, 0, len(inst.Expression.Invocations))
		for j, inv := range inst.Expression.Invocations {
			var left *Invocation
			if inv.Left != nil {
				if *inv.Left < 0 || *inv.Left >= j {
					return nil, errors.Errorf("instance %d, invocation %d: left %d must reference an earlier invocation", i, j, *inv.Left)
				}
				left = invocations[*inv.Left]
			}
			invocations = append(invocations, NewInvocation(inv.Name, inv.Start, inv.End, left))
		}

		first := firstToken(tokens, inst.Expression.FirstToken)
		instances = append(instances, NewInstance(inst.Start, inst.End, NewExpression(first, invocations...)))
	}

	model := NewModel(instances...)
	if err := model.Validate(); err != nil {
		return nil, errors.Errorf("invalid model: %w", err)
	}
	return model, nil
}

func firstToken(tokens []tokenizer.Token, start int) tokenizer.Token {
	for _, tok := range tokens {
		if tok.Start == start {
			return tok
		}
	}
	return tokenizer.Token{Type: tokenizer.TokenUnknown, Start: start, End: start}
}

// 🔍 LoadModel reads and builds a model description from fs.
func LoadModel(fs afero.Fs, path string, tokens []tokenizer.Token) (*Model, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading model description: %w", err)
	}

	desc, err := ParseDescription(data)
	if err != nil {
		return nil, err
	}

	return desc.Build(tokens)
}
