package hair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeMode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"women", ModeWomen},
		{"men", ModeMen},
		{"  MEN  ", ModeMen},
		{"Women", ModeWomen},
		{"", ModeWomen},
		{"unisex", ModeWomen},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SafeMode(tt.input), "input=%q", tt.input)
	}
}

func TestCanonicalizeProfileAliases(t *testing.T) {
	raw := map[string]interface{}{
		"mode":           "men",
		"hairType":       "wavy",
		"scalpCondition": "oily",
		"dryness":        "high",
		"chemicals":      "bleach",
		"nightCare":      "bonnet",
		"washFrequency":  "3x/week",
		"issues":         "frizz, dryness",
		"goals":          []interface{}{"growth", "shine"},
	}

	p := CanonicalizeProfile(raw)

	assert.Equal(t, ModeMen, p.Mode)
	assert.Equal(t, "wavy", p.HairType)
	assert.Equal(t, "oily", p.Scalp)
	assert.Equal(t, "high", p.DrynessLevel)
	assert.Equal(t, "bleach", p.ChemicalTreatments)
	assert.Equal(t, "bonnet", p.NighttimeCare)
	assert.Equal(t, "3x/week", p.WashFrequency)
	assert.Equal(t, []string{"frizz", "dryness"}, p.MainIssues)
	assert.Equal(t, []string{"growth", "shine"}, p.Goals)
}

func TestCanonicalizeProfilePrimaryNameWins(t *testing.T) {
	raw := map[string]interface{}{
		"hair_type": "coily",
		"hairType":  "straight",
		"scalp":     "dry",
		"scalpCondition": "oily",
	}

	p := CanonicalizeProfile(raw)

	assert.Equal(t, "coily", p.HairType)
	assert.Equal(t, "dry", p.Scalp)
}

func TestCanonicalizeProfileDefaults(t *testing.T) {
	p := CanonicalizeProfile(nil)

	assert.Equal(t, ModeWomen, p.Mode)
	assert.Equal(t, DefaultCuriosity, p.Curiosity)
	assert.Equal(t, []string{}, p.MainIssues)
	assert.Equal(t, []string{}, p.Goals)
	assert.Empty(t, p.HairType)
}

func TestCanonicalizeProfileBlankValuesIgnored(t *testing.T) {
	raw := map[string]interface{}{
		"hair_type": "   ",
		"hairType":  " curly ",
		"curiosity": "",
	}

	p := CanonicalizeProfile(raw)

	// 主名稱值為空白時退到下一個別名
	assert.Equal(t, "curly", p.HairType)
	assert.Equal(t, DefaultCuriosity, p.Curiosity)
}

func TestCanonicalizeProfileNonStringDowngraded(t *testing.T) {
	raw := map[string]interface{}{
		"mode":      42,
		"hair_type": []string{"curly"},
		"porosity":  true,
	}

	p := CanonicalizeProfile(raw)

	assert.Equal(t, ModeWomen, p.Mode)
	assert.Empty(t, p.HairType)
	assert.Empty(t, p.Porosity)
}

func TestCanonicalizeProfileKeepsUnknownFields(t *testing.T) {
	raw := map[string]interface{}{
		"hair_type":      "curly",
		"favorite_color": "blue",
		"age":            30,
	}

	p := CanonicalizeProfile(raw)

	assert.Equal(t, "curly", p.HairType)
	assert.Equal(t, "blue", p.Extra["favorite_color"])
	assert.Equal(t, 30, p.Extra["age"])
	assert.NotContains(t, p.Extra, "hair_type")
}
