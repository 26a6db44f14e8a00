package pcb

// Board is the subset of a KiCad board needed to check annotation
type Board struct {
	Version    int         // File format version
	Generator  string      // Generator info (e.g., "pcbnew")
	Nets       []Net       // Electrical nets
	Footprints []Footprint // Component footprints
}

// Net is a declared net
type Net struct {
	Number int
	Name   string
	Line   int // 1-based line of the declaration
}

// Footprint is a placed footprint (module in KiCad 5)
type Footprint struct {
	Library   string // Library name
	Name      string // Footprint name
	Reference string // Reference designator (e.g., "K_A1_0")
	Line      int    // 1-based line of the reference
}

// Unannotated is a generated reference that the annotator would renumber
type Unannotated struct {
	Reference string
	Line      int
	Source    string // "footprint" or "net"
}

// GetNet returns the net with the given name
func (b *Board) GetNet(name string) *Net {
	for i := range b.Nets {
		if b.Nets[i].Name == name {
			return &b.Nets[i]
		}
	}
	return nil
}

// GetFootprint returns the footprint with the given reference
func (b *Board) GetFootprint(ref string) *Footprint {
	for i := range b.Footprints {
		if b.Footprints[i].Reference == ref {
			return &b.Footprints[i]
		}
	}
	return nil
}
