package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/Qctopus/contingento-engine/pkg/domain/model"
	"github.com/Qctopus/contingento-engine/pkg/domain/types"
)

func TestCharacteristics_UnmarshalJSON(t *testing.T) {
	raw := `{"coastal_location": true, "tourism_share": 65, "staff_count": 12.5}`

	var chars model.Characteristics
	gt.NoError(t, json.Unmarshal([]byte(raw), &chars))
	gt.N(t, len(chars)).Equal(3)

	b, err := chars[types.CharacteristicKey("coastal_location")].AsBool()
	gt.NoError(t, err)
	gt.B(t, b).True()

	n, err := chars[types.CharacteristicKey("tourism_share")].AsNumber()
	gt.NoError(t, err)
	gt.Number(t, n).Equal(65)

	// Type accessors reject the wrong kind
	_, err = chars[types.CharacteristicKey("coastal_location")].AsNumber()
	gt.Error(t, err)
	_, err = chars[types.CharacteristicKey("staff_count")].AsBool()
	gt.Error(t, err)
}

func TestCharacteristicValue_UnmarshalRejectsOtherTypes(t *testing.T) {
	var v model.CharacteristicValue
	gt.Error(t, json.Unmarshal([]byte(`"yes"`), &v))
	gt.Error(t, json.Unmarshal([]byte(`["a"]`), &v))
}

func TestCharacteristicValue_RoundTrip(t *testing.T) {
	out, err := json.Marshal(model.Characteristics{
		"generator_owned": model.BoolValue(false),
		"tourism_share":   model.NumberValue(40),
	})
	gt.NoError(t, err)

	var back model.Characteristics
	gt.NoError(t, json.Unmarshal(out, &back))
	gt.V(t, back["generator_owned"].Kind).Equal(model.KindBool)
	gt.V(t, back["tourism_share"].Kind).Equal(model.KindNumber)
}
