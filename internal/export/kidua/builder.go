package kidua

import (
	"github.com/lineup-tools/nadeconv/internal/util"
	"github.com/lineup-tools/nadeconv/pkg/core"
)

// DefaultFileName is the aggregated document name
const DefaultFileName = "lineups.json"

// Options configures Build
type Options struct {
	// FileName of the aggregated document. Ignored when SplitByMap is set.
	FileName string
	// SplitByMap writes one "<map>.json" document per map instead of a
	// single document for every map.
	SplitByMap bool
}

// Build converts c. By default every map's lineups are concatenated, in map
// name order, into a single document and the map a lineup came from is not
// recorded. Empty results produce no document.
func Build(c core.Collection, opts Options) core.Conversion {
	conv := core.NewConversion(core.FormatKidua)
	all := []Nade{}

	for _, mapName := range c.Maps() {
		nades := []Nade{}
		for _, l := range c[mapName] {
			nade, err := Convert(l)
			if err != nil {
				conv.Reject(mapName, l, err)
				continue
			}
			nades = append(nades, nade)
			conv.Accept(mapName)
		}

		if !opts.SplitByMap {
			all = append(all, nades...)
			continue
		}
		if len(nades) == 0 {
			continue
		}
		conv.Documents = append(conv.Documents, core.Document{
			Path:  util.SanitizeFileName(mapName) + ".json",
			Map:   mapName,
			Count: len(nades),
			Body:  Export{Lineups: nades},
		})
	}

	if opts.SplitByMap || len(all) == 0 {
		return conv
	}
	fileName := opts.FileName
	if fileName == "" {
		fileName = DefaultFileName
	}
	conv.Documents = append(conv.Documents, core.Document{
		Path:  fileName,
		Count: len(all),
		Body:  Export{Lineups: all},
	})
	return conv
}
