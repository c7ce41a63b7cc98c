package namelist

// FieldSpec documents one key of the /NACA/ record.
type FieldSpec struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Meaning   string `json:"meaning"`
	AppliesTo string `json:"applies_to,omitempty"`
}

var fieldSpecs = []FieldSpec{
	{Key: "a", Type: "fraction in [0,1]", Meaning: "extent of constant loading, as fraction of chord", AppliesTo: "6-series camber lines (6, 6A, 6M)"},
	{Key: "camber", Type: "enum{0,2,3,3R,6,6A,6M}", Meaning: "camber-line family"},
	{Key: "cl", Type: "real", Meaning: "design lift coefficient of the camber line", AppliesTo: "3-digit, 3-digit-reflex and 6-series camber lines"},
	{Key: "chord", Type: "positive real", Meaning: "model chord used for listing ordinates in dimensional units"},
	{Key: "cmax", Type: "fraction of chord", Meaning: "maximum camber", AppliesTo: "2-digit camber line"},
	{Key: "dencode", Type: "enum{0,1,2,3}", Meaning: "spacing of the x-array: 0 user table, 1 coarse, 2 fine, 3 very fine"},
	{Key: "leindex", Type: "real", Meaning: "leading-edge radius parameter", AppliesTo: "4-digit-modified profiles"},
	{Key: "name", Type: "string", Meaning: "title on output; derived from the designation when empty"},
	{Key: "ntable", Type: "positive integer", Meaning: "number of entries in xtable", AppliesTo: "dencode=0"},
	{Key: "profile", Type: "enum{4,4M,6,6A,63..67,63A,64A,65A}", Meaning: "thickness family"},
	{Key: "toc", Type: "fraction of chord", Meaning: "thickness-chord ratio"},
	{Key: "xmaxc", Type: "fraction of chord", Meaning: "chordwise position of maximum camber", AppliesTo: "2-digit camber line"},
	{Key: "xmaxt", Type: "fraction of chord", Meaning: "chordwise position of maximum thickness", AppliesTo: "4-digit-modified profiles"},
	{Key: "xorigin", Type: "real", Meaning: "x-coordinate of the leading edge"},
	{Key: "yorigin", Type: "real", Meaning: "y-coordinate of the leading edge"},
	{Key: "xtable", Type: "increasing reals, length ntable", Meaning: "chordwise stations at which ordinates are computed", AppliesTo: "dencode=0"},
}

// Fields returns the reference table for every key of Params, in key order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// Lookup returns the reference entry for key.
func Lookup(key string) (FieldSpec, bool) {
	for _, f := range fieldSpecs {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}
