package kidua

import (
	"encoding/json"
	"testing"

	"github.com/lineup-tools/nadeconv/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection() core.Collection {
	a := instantLineup()
	a.To = "a"
	b := instantLineup()
	b.To = "b"
	running := instantLineup()
	running.Run = 10
	z := instantLineup()
	z.To = "z"
	z.Weapon = "weapon_smokegrenade"

	return core.Collection{
		"de_nuke":  {z},
		"de_dust2": {a, running, b},
		"de_train": {running},
	}
}

func TestBuild_Aggregated(t *testing.T) {
	conv := Build(testCollection(), Options{})

	assert.Equal(t, core.FormatKidua, conv.Format)
	assert.Equal(t, 3, conv.Total)
	assert.Equal(t, map[string]int{"de_dust2": 2, "de_nuke": 1}, conv.PerMap)
	assert.Equal(t, core.Tally{"run is not supported": 2}, conv.Rejections)

	require.Len(t, conv.Documents, 1)
	doc := conv.Documents[0]
	assert.Equal(t, DefaultFileName, doc.Path)
	assert.Equal(t, "", doc.Map)
	assert.Equal(t, 3, doc.Count)

	export, ok := doc.Body.(Export)
	require.True(t, ok)
	var spots []string
	for _, n := range export.Lineups {
		spots = append(spots, n.Spot)
	}
	assert.Equal(t, []string{"a", "b", "z"}, spots)
}

func TestBuild_AggregatedFileName(t *testing.T) {
	conv := Build(testCollection(), Options{FileName: "all.json"})
	require.Len(t, conv.Documents, 1)
	assert.Equal(t, "all.json", conv.Documents[0].Path)
}

func TestBuild_SplitByMap(t *testing.T) {
	conv := Build(testCollection(), Options{SplitByMap: true, FileName: "ignored.json"})

	assert.Equal(t, 3, conv.Total)
	require.Len(t, conv.Documents, 2)
	assert.Equal(t, "de_dust2.json", conv.Documents[0].Path)
	assert.Equal(t, "de_dust2", conv.Documents[0].Map)
	assert.Equal(t, 2, conv.Documents[0].Count)
	assert.Equal(t, "de_nuke.json", conv.Documents[1].Path)
	assert.Equal(t, 1, conv.Documents[1].Count)
}

func TestBuild_Empty(t *testing.T) {
	conv := Build(core.Collection{"de_train": {}}, Options{})
	assert.Empty(t, conv.Documents)
	assert.Equal(t, 0, conv.Total)
}

func TestBuild_JSONShape(t *testing.T) {
	conv := Build(core.Collection{"de_dust2": {instantLineup()}}, Options{})
	require.Len(t, conv.Documents, 1)

	body, err := json.Marshal(conv.Documents[0].Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lineups": [
		{"spot": "B", "origin": {"x": 0, "y": 0, "z": 0}, "view": {"x": 0, "y": 90, "z": 0}, "nade": 1}
	]}`, string(body))
}
