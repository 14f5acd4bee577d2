// Package gate models the four-layer validation pipeline and decides,
// from a previously generated report, what an interactive session needs
// to hear: nothing, a staleness notice, or the earliest failing layer.
package gate

// Layer is one stage of the fixed validation pipeline. Earlier layers
// gate later ones: a failure in layer 2 is reported before a failure in
// layer 4 regardless of severity, so the user always sees the earliest
// hole in the defense.
type Layer struct {
	Num    int
	Name   string
	Target string
}

// Layers is the fixed pipeline in ascending order.
var Layers = []Layer{
	{Num: 1, Name: "requirements", Target: "validate-requirements"},
	{Num: 2, Name: "tdd", Target: "validate-tdd"},
	{Num: 3, Name: "implementation", Target: "validate-implementation"},
	{Num: 4, Name: "verify", Target: "validate-verify"},
}

// LayerByNum returns the layer with the given number, or false
func LayerByNum(num int) (Layer, bool) {
	for _, l := range Layers {
		if l.Num == num {
			return l, true
		}
	}
	return Layer{}, false
}

// LayerByName returns the named layer, or false
func LayerByName(name string) (Layer, bool) {
	for _, l := range Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}
