package core

// Format identifies a target schema
type Format string

const (
	FormatMono       Format = "mono"
	FormatPrimordial Format = "primordial"
	FormatKidua      Format = "kidua"
)

// Formats lists every supported target format
var Formats = []Format{FormatMono, FormatPrimordial, FormatKidua}

// Document is one output file produced by a target format.
// Path is relative to the format's output directory.
type Document struct {
	Path  string
	Map   string // empty when the document spans several maps
	Count int    // lineups contained in Body
	Body  any
}

// Failure records a lineup that a target format could not represent.
type Failure struct {
	Map    string
	Lineup Lineup
	Err    error
}

// Conversion is the outcome of converting a Collection to one target format.
// It is a plain value: nothing is written or logged while building it.
type Conversion struct {
	Format     Format
	Documents  []Document
	PerMap     map[string]int // lineups converted per map
	Total      int
	Skipped    int // lineups the format ignores without counting them as rejections
	Rejections Tally
	Failures   []Failure
}

// NewConversion returns an empty Conversion for format
func NewConversion(format Format) Conversion {
	return Conversion{
		Format:     format,
		Documents:  []Document{},
		PerMap:     map[string]int{},
		Rejections: Tally{},
	}
}

// Reject records a failed lineup
func (c *Conversion) Reject(mapName string, l Lineup, err error) {
	c.Rejections.Add(err)
	c.Failures = append(c.Failures, Failure{Map: mapName, Lineup: l, Err: err})
}

// Accept records a converted lineup
func (c *Conversion) Accept(mapName string) {
	c.PerMap[mapName]++
	c.Total++
}
