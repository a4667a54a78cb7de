package primordial

import (
	"encoding/json"
	"testing"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	first := runningLineup()
	first.To = "first"
	instant := runningLineup()
	instant.Run = 0
	second := runningLineup()
	second.To = "second"

	c := core.Collection{
		"de_inferno": {first, instant, second},
		"de_train":   {instant},
		"de_vertigo": {},
	}

	conv := Build(c)

	assert.Equal(t, core.FormatPrimordial, conv.Format)
	assert.Equal(t, 2, conv.Total)
	assert.Equal(t, 0, conv.Skipped)
	assert.Equal(t, core.Tally{"nades not thrown while running are unsupported": 2}, conv.Rejections)
	assert.Len(t, conv.Failures, 2)

	require.Len(t, conv.Documents, 1)
	doc := conv.Documents[0]
	assert.Equal(t, "de_inferno/nades.json", doc.Path)
	assert.Equal(t, "de_inferno", doc.Map)
	assert.Equal(t, 2, doc.Count)

	export, ok := doc.Body.(Export)
	require.True(t, ok)
	require.Len(t, export, 2)
	assert.Equal(t, "first", export["0"].Name)
	assert.Equal(t, "second", export["1"].Name)
}

func TestBuild_MapOrder(t *testing.T) {
	l := runningLineup()
	conv := Build(core.Collection{"de_overpass": {l}, "cs_office": {l}, "de_ancient": {l}})

	var paths []string
	for _, doc := range conv.Documents {
		paths = append(paths, doc.Path)
	}
	assert.Equal(t, []string{"cs_office/nades.json", "de_ancient/nades.json", "de_overpass/nades.json"}, paths)
}

func TestDocumentPath(t *testing.T) {
	assert.Equal(t, "de_dust2/nades.json", DocumentPath("de_dust2"))
	assert.Equal(t, "workshop_de_x/nades.json", DocumentPath("workshop/de_x"))
	assert.Equal(t, "_/nades.json", DocumentPath(".."))
}

func TestBuild_JSONShape(t *testing.T) {
	conv := Build(core.Collection{"de_mirage": {runningLineup()}})
	require.Len(t, conv.Documents, 1)

	body, err := json.Marshal(conv.Documents[0].Body)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"0": {
			"angle": {"x": 0, "y": 90},
			"availability": {"fire": false, "explosive": true, "smoke": false, "flash": false},
			"delay throw ticks": 64,
			"jump throw": false,
			"jump throw delay ticks": 64,
			"name": "B",
			"pos": {"x": 0, "y": 0, "z": 0},
			"run direction": 180,
			"run ticks": 64,
			"throw strength": 100
		}
	}`, string(body))
}
