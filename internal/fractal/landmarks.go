package fractal

// Landmark is a named, well-known region of the Mandelbrot set.
type Landmark struct {
	Name        string
	Description string
	Bounds      PlaneBounds

	// Home marks the startup view. Sessions restore their own initial
	// bounds for it, which depend on the screen size.
	Home bool
}

// Classic regions / landmarks in the Mandelbrot set
var Landmarks = []Landmark{
	{
		Name:        "Full set",
		Description: "the whole set, as seen at startup",
		Bounds:      PlaneBounds{ReMin: -2.0, ReMax: 1.0, ImMin: -1.2, ImMax: 1.2},
		Home:        true,
	},
	{
		Name:        "Seahorse Valley",
		Description: "dense filaments and repeating seahorse curls",
		Bounds:      PlaneBounds{ReMin: -0.8, ReMax: -0.7, ImMin: 0.05, ImMax: 0.15},
	},
	{
		Name:        "Elephant Valley",
		Description: "large bulb with trunk-like tendrils",
		Bounds:      PlaneBounds{ReMin: 0.25, ReMax: 0.35, ImMin: -0.05, ImMax: 0.05},
	},
	{
		Name:        "Spiral Minibrot",
		Description: "small copy with tight spiral arms",
		Bounds:      PlaneBounds{ReMin: -0.7435, ReMax: -0.7420, ImMin: 0.1310, ImMax: 0.1325},
	},
	{
		Name:        "Triple Spiral",
		Description: "threefold symmetric spiral structure",
		Bounds:      PlaneBounds{ReMin: -0.7480, ReMax: -0.7450, ImMin: 0.0950, ImMax: 0.0980},
	},
	{
		Name:        "Valley of the Dragon",
		Description: "deep, highly detailed spiral filaments",
		Bounds:      PlaneBounds{ReMin: -0.7400, ReMax: -0.7350, ImMin: 0.1800, ImMax: 0.1850},
	},
	{
		Name:        "Minibrot in a Mini-Spiral",
		Description: "self-similar copy inside a spiral arm",
		Bounds:      PlaneBounds{ReMin: -1.7390, ReMax: -1.7375, ImMin: -0.0235, ImMax: -0.0220},
	},
}

// LookupLandmark finds a landmark by name.
func LookupLandmark(name string) (Landmark, bool) {
	for _, l := range Landmarks {
		if l.Name == name {
			return l, true
		}
	}
	return Landmark{}, false
}
