package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

// CharacteristicKind discriminates the value variants a user-declared
// characteristic can carry
type CharacteristicKind string

const (
	KindBool   CharacteristicKind = "bool"
	KindNumber CharacteristicKind = "number"
)

// CharacteristicValue is a user-declared attribute value: either a boolean
// answer or a numeric one (percentage or categorical numeric proxy).
type CharacteristicValue struct {
	Kind   CharacteristicKind
	Bool   bool
	Number float64
}

// BoolValue returns a boolean characteristic value
func BoolValue(v bool) CharacteristicValue {
	return CharacteristicValue{Kind: KindBool, Bool: v}
}

// NumberValue returns a numeric characteristic value
func NumberValue(v float64) CharacteristicValue {
	return CharacteristicValue{Kind: KindNumber, Number: v}
}

// AsNumber returns the numeric value, or an error for non-numeric kinds
func (v CharacteristicValue) AsNumber() (float64, error) {
	if v.Kind != KindNumber {
		return 0, goerr.Wrap(ErrInvalidCharacteristic, "characteristic value is not numeric",
			goerr.V("kind", v.Kind))
	}
	return v.Number, nil
}

// AsBool returns the boolean value, or an error for non-boolean kinds
func (v CharacteristicValue) AsBool() (bool, error) {
	if v.Kind != KindBool {
		return false, goerr.Wrap(ErrInvalidCharacteristic, "characteristic value is not boolean",
			goerr.V("kind", v.Kind))
	}
	return v.Bool, nil
}

// MarshalJSON encodes the value as a bare JSON boolean or number
func (v CharacteristicValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindNumber:
		return json.Marshal(v.Number)
	default:
		return nil, goerr.Wrap(ErrInvalidCharacteristic, "unknown characteristic kind",
			goerr.V("kind", v.Kind))
	}
}

// UnmarshalJSON accepts a bare JSON boolean or number
func (v *CharacteristicValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}

	return goerr.Wrap(ErrInvalidCharacteristic, "characteristic value must be a boolean or number",
		goerr.V("raw", string(data)))
}

// Characteristics is the per-session map of user-declared attribute values
type Characteristics map[types.CharacteristicKey]CharacteristicValue
