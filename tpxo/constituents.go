package tpxo

// constituents lists the 15 harmonic constituents carried by the TPXO9
// atlas, in the order of the dataset's constituent dimension. A name's
// position here is its index into the ha/hp grids, so the order must
// never change.
var constituents = [...]string{
	"M2", "S2", "N2", "K2", "K1", "O1", "P1", "Q1",
	"Mm", "Mf", "M4", "MN4", "MS4", "2N2", "S1",
}

// constituentIndex maps constituent name → grid layer index.
var constituentIndex = func() map[string]int {
	m := make(map[string]int, len(constituents))
	for i, name := range constituents {
		m[name] = i
	}
	return m
}()

// Catalog returns the constituent catalog in grid order. The slice is a
// copy; callers may modify it freely.
func Catalog() []string {
	out := make([]string, len(constituents))
	copy(out, constituents[:])
	return out
}

// Constituents returns the constituent catalog in grid order.
func (a *Atlas) Constituents() []string { return Catalog() }
