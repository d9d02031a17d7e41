package types

// Name font families offered by the customization panel
const (
	FontSpaceGrotesk = "'Space Grotesk', sans-serif"
	FontInter        = "'Inter', sans-serif"
	FontSerif        = "'serif'"
	FontMonospace    = "'monospace'"
)

// Name font sizes offered by the customization panel
const (
	FontSizeLarge   = "2.25rem"
	FontSizeXLarge  = "3rem"
	FontSizeXXLarge = "3.75rem"
)

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FontFamilyOptions lists the name fonts in display order
var FontFamilyOptions = []Option{
	{Value: FontSpaceGrotesk, Label: "Space Grotesk"},
	{Value: FontInter, Label: "Inter"},
	{Value: FontSerif, Label: "Serif"},
	{Value: FontMonospace, Label: "Monospace"},
}

// FontSizeOptions lists the name sizes in display order
var FontSizeOptions = []Option{
	{Value: FontSizeLarge, Label: "Large"},
	{Value: FontSizeXLarge, Label: "X-Large"},
	{Value: FontSizeXXLarge, Label: "XX-Large"},
}

// IsOfferedFontFamily reports whether value is one of FontFamilyOptions
func IsOfferedFontFamily(value string) bool {
	return hasOption(FontFamilyOptions, value)
}

// IsOfferedFontSize reports whether value is one of FontSizeOptions
func IsOfferedFontSize(value string) bool {
	return hasOption(FontSizeOptions, value)
}

func hasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
