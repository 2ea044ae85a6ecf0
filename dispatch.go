// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

// Translatable is implemented by values that can render themselves for
// a locale. *Message implements it; foreign types can implement it to
// route their textual form through [Translate].
type Translatable interface {
	Translate(locale string) (string, error)
}

// Translate returns the translated form of value for locale. Messages
// and other Translatables become their rendered text; slices are
// translated element-wise with order and length preserved; string-keyed
// maps are translated value-wise with keys untouched. Anything else is
// returned unchanged, so the function is safe to apply to arbitrary
// data such as log or API payloads.
func Translate(value any, locale string) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Message:
		if v == nil {
			return nil, nil
		}

		return v.Translate(locale)
	case Translatable:
		return v.Translate(locale)
	case []any:
		out := make([]any, len(v))

		for i, elem := range v {
			translated, err := Translate(elem, locale)
			if err != nil {
				return nil, err
			}

			out[i] = translated
		}

		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))

		for key, elem := range v {
			translated, err := Translate(elem, locale)
			if err != nil {
				return nil, err
			}

			out[key] = translated
		}

		return out, nil
	default:
		return value, nil
	}
}
