package primordial

import (
	"path"
	"strconv"

	"github.com/lineup-tools/nadeconv/internal/util"
	"github.com/lineup-tools/nadeconv/pkg/core"
)

// FileName is the document name inside each map directory
const FileName = "nades.json"

// DocumentPath returns the path of the document for a map, relative to the
// output directory.
func DocumentPath(mapName string) string {
	return path.Join(util.SanitizeFileName(mapName), FileName)
}

// Build converts every map of c to its own document. Maps without a single
// convertible lineup produce no document.
func Build(c core.Collection) core.Conversion {
	conv := core.NewConversion(core.FormatPrimordial)

	for _, mapName := range c.Maps() {
		export := Export{}
		for _, l := range c[mapName] {
			nade, err := Convert(l)
			if err != nil {
				conv.Reject(mapName, l, err)
				continue
			}
			export[strconv.Itoa(len(export))] = nade
			conv.Accept(mapName)
		}
		if len(export) == 0 {
			continue
		}
		conv.Documents = append(conv.Documents, core.Document{
			Path:  DocumentPath(mapName),
			Map:   mapName,
			Count: len(export),
			Body:  export,
		})
	}
	return conv
}
