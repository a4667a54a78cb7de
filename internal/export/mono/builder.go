package mono

import "github.com/lineup-tools/nadeconv/pkg/core"

// DefaultFileName is the document name used when none is configured
const DefaultFileName = "mono.json"

// Options configures Build
type Options struct {
	FileName string
}

// Build converts every lineup with a known weapon and groups the results by map and
// weapon code. Every map of the collection appears in the export, even when empty.
// The whole export is a single document.
func Build(c core.Collection, opts Options) core.Conversion {
	conv := core.NewConversion(core.FormatMono)
	export := make(Export, len(c))

	for _, mapName := range c.Maps() {
		byWeapon := map[string][]Nade{}
		for _, l := range c[mapName] {
			code, ok := WeaponCode(l.Weapon)
			if !ok {
				conv.Skipped++
				continue
			}
			nade, err := Convert(l)
			if err != nil {
				conv.Reject(mapName, l, err)
				continue
			}
			byWeapon[code] = append(byWeapon[code], nade)
			conv.Accept(mapName)
		}
		export[mapName] = byWeapon
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = DefaultFileName
	}
	conv.Documents = append(conv.Documents, core.Document{
		Path:  fileName,
		Count: conv.Total,
		Body:  export,
	})
	return conv
}
