package cutsheet

import "regexp"

var colorCodePattern = regexp.MustCompile(`\d{4}`)

// RAL-style profile codes the shop floor knows by name.
var colorNamesByCode = map[string]string{
	"9016": "Beyaz",
	"7016": "Antrasit",
	"9005": "Siyah",
	"8014": "Kahve",
}

// ProfileColorCode extracts the embedded 4-digit code from a storefront color
// label ("White 9016" -> "9016"). Labels without a 4-digit code are returned
// unchanged.
func ProfileColorCode(label string) string {
	if code := colorCodePattern.FindString(label); code != "" {
		return code
	}
	return label
}

// ProfileColorName maps a storefront color label onto the canonical Turkish
// color name via its embedded code. Unknown codes and codeless labels fall
// back to the original label.
func ProfileColorName(label string) string {
	code := colorCodePattern.FindString(label)
	if code == "" {
		return label
	}
	if name, ok := colorNamesByCode[code]; ok {
		return name
	}
	return label
}
