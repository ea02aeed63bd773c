// SPDX-License-Identifier: MIT
package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "name": "Sample",
  "styles": {
    "body": {"backgroundColor": "#111", "margin": 0},
    "button": {
      "padding": "10px",
      "colors": ["#a", "#b", "#c"],
      "colorProperty": "color",
      "initialColor": "#a"
    },
    "configSelector": {"color": "#fff"}
  }
}`

func TestParseSplitsReservedKeys(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	require.NotNil(t, doc.Styles.Button)
	assert.Equal(t, []string{"#a", "#b", "#c"}, doc.Styles.Button.Colors)
	assert.Equal(t, "color", doc.Styles.Button.ColorProperty)
	assert.Equal(t, "#a", doc.Styles.Button.InitialColor)
	assert.Equal(t, map[string]string{"padding": "10px"}, doc.Styles.Button.Properties)

	for _, reserved := range []string{KeyColors, KeyColorProperty, KeyInitialColor} {
		_, ok := doc.Styles.Button.Get(reserved)
		assert.False(t, ok, "reserved key %s leaked into properties", reserved)
	}
}

func TestParseKeepsNumbersOpaque(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	margin, ok := doc.Styles.Body.Get("margin")
	require.True(t, ok)
	assert.Equal(t, "0", margin)
}

func TestParseMissingRolesAreNil(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Nil(t, doc.Styles.Heading)
	assert.NotNil(t, doc.Styles.Block(RoleSelector))
	assert.Nil(t, doc.Styles.Block(Role("footer")))
}

func TestParseRejectsNestedPropertyValues(t *testing.T) {
	_, err := Parse([]byte(`{"styles": {"body": {"margin": {"top": "1px"}}}}`))
	require.Error(t, err)
}

func TestMarshalRoundTripKeepsReservedKeys(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"configSelector"`)
	assert.Contains(t, string(out), `"initialColor"`)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestResolvedColorPropertyDefault(t *testing.T) {
	var nilBlock *Block
	assert.Equal(t, "backgroundColor", nilBlock.ResolvedColorProperty())
	assert.Equal(t, "backgroundColor", (&Block{}).ResolvedColorProperty())
	assert.Equal(t, "color", (&Block{ColorProperty: "color"}).ResolvedColorProperty())
}

func TestIsGradient(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"linear-gradient(135deg, #667eea 0%, #764ba2 100%)", true},
		{"radial-gradient(circle, #fff, #000)", true},
		{"repeating-conic-gradient(red 0 15deg, blue 15deg 30deg)", true},
		{"#ffffff", false},
		{"url(bg.png)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGradient(tt.value))
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	clone := doc.Clone()
	clone.Styles.Button.Colors[0] = "#changed"
	clone.Styles.Body.Properties["margin"] = "5px"

	assert.Equal(t, "#a", doc.Styles.Button.Colors[0])
	assert.Equal(t, "0", doc.Styles.Body.Properties["margin"])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Sample", (&Document{Name: "Sample"}).DisplayName("k.json"))
	assert.Equal(t, "k.json", (&Document{}).DisplayName("k.json"))
}

func TestSchemaHintMentionsReservedKeys(t *testing.T) {
	hint := SchemaHint()
	for _, key := range []string{KeyColors, KeyColorProperty, KeyInitialColor, "configSelector"} {
		assert.True(t, strings.Contains(hint, key), "schema hint missing %s", key)
	}
}
