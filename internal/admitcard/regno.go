package admitcard

import "strings"

// RegistrationPrefix opens every registration code.
const RegistrationPrefix = "ANARC25"

// RegistrationCode derives the printed registration code from a raw roll
// number: the prefix followed by the upper-cased first two characters,
// characters three to five, and the last two characters.
//
//	RegistrationCode("23upe026") == "ANARC2523UPE26"
//
// Roll numbers shorter than seven characters are not rejected. Each part
// is clamped to what the string holds, so "" yields the bare prefix and
// the parts may overlap.
func RegistrationCode(regNo string) string {
	r := []rune(regNo)
	return RegistrationPrefix +
		strings.ToUpper(substring(r, 0, 2)) +
		strings.ToUpper(substring(r, 2, 5)) +
		strings.ToUpper(substring(r, len(r)-2, len(r)))
}

// substring returns r[from:to] with both bounds clamped into [0, len(r)].
func substring(r []rune, from, to int) string {
	from = clamp(from, 0, len(r))
	to = clamp(to, 0, len(r))
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Filename is the download name of an admit card. It uses the raw roll
// number, not the derived registration code.
func Filename(regNo string) string {
	return regNo + "_admit_card.pdf"
}
