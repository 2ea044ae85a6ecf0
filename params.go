// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"fmt"
	"maps"
)

// Cloner lets a parameter value control how it is snapshotted by
// [Message.Format]. Values that are neither basic immutable types nor
// Cloners are captured as their text rendering instead, so a message
// never keeps a live reference to mutable caller state.
type Cloner interface {
	Clone() any
}

type paramKind uint8

const (
	kindSingle paramKind = iota + 1
	kindPositional
	kindNamed
)

// params is an immutable snapshot of substitution parameters. A nil
// *params means the message has none.
type params struct {
	kind   paramKind
	single any
	seq    []any
	dict   map[string]any
}

// cloneParam snapshots one parameter value. Messages pass through
// unchanged: they are immutable themselves and must stay translatable
// inside the snapshot.
func cloneParam(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case *Message:
		return v
	case Cloner:
		return v.Clone()
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return value
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = cloneParam(elem)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = cloneParam(elem)
		}

		return out
	default:
		return fmt.Sprint(value)
	}
}

// translated returns a copy of p with every captured value passed
// through [Translate] for locale.
func (p *params) translated(locale string) (*params, error) {
	if p == nil {
		return nil, nil
	}

	out := &params{kind: p.kind}

	switch p.kind {
	case kindSingle:
		value, err := Translate(p.single, locale)
		if err != nil {
			return nil, err
		}

		out.single = value
	case kindPositional:
		out.seq = make([]any, len(p.seq))

		for i, elem := range p.seq {
			value, err := Translate(elem, locale)
			if err != nil {
				return nil, err
			}

			out.seq[i] = value
		}
	case kindNamed:
		out.dict = make(map[string]any, len(p.dict))

		for key, elem := range p.dict {
			value, err := Translate(elem, locale)
			if err != nil {
				return nil, err
			}

			out.dict[key] = value
		}
	}

	return out, nil
}

// sanitizeFormatArg builds the parameter snapshot for a Format call on
// m. A nil argument becomes the single positional parameter nil; a
// string-keyed map becomes a named snapshot trimmed to the msgid's
// keys; a slice becomes a positional snapshot; anything else is a
// single positional parameter.
func (m *Message) sanitizeFormatArg(other any) (*params, error) {
	switch v := other.(type) {
	case nil:
		return &params{kind: kindPositional, seq: []any{nil}}, nil
	case map[string]any:
		return m.trimNamed(v)
	case []any:
		seq := make([]any, len(v))
		for i, elem := range v {
			seq[i] = cloneParam(elem)
		}

		return &params{kind: kindPositional, seq: seq}, nil
	default:
		return &params{kind: kindSingle, single: cloneParam(other)}, nil
	}
}

// trimNamed trims a named-parameter mapping down to the keys the msgid
// references. Previously captured named parameters merge in first, so a
// chain of Format calls can fill keys one at a time; the new mapping
// wins on conflict. Each kept value is snapshotted individually, so
// trimmed snapshots stay small no matter how large the caller's map is.
func (m *Message) trimNamed(dict map[string]any) (*params, error) {
	keys := namedKeys(m.msgid)

	if len(keys) == 0 {
		if hasPositionalDirective(m.msgid) {
			// No named placeholders but positional ones: the whole
			// mapping is the one parameter.
			return &params{kind: kindSingle, single: cloneParam(dict)}, nil
		}

		return &params{kind: kindNamed, dict: map[string]any{}}, nil
	}

	merged := make(map[string]any, len(dict))
	if m.params != nil && m.params.kind == kindNamed {
		maps.Copy(merged, m.params.dict)
	}

	maps.Copy(merged, dict)

	trimmed := make(map[string]any, len(keys))

	for _, key := range keys {
		value, ok := merged[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
		}

		trimmed[key] = cloneParam(value)
	}

	return &params{kind: kindNamed, dict: trimmed}, nil
}
