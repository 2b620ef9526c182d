package baselines

import (
	"strings"
	"unicode"
)

const (
	cisDisplayPrefixConstant         = "CIS "
	indigoDisplayPrefixConstant      = "Indigo "
	nistDisplayPrefixConstant        = "NIST "
	cmmcDisplayPrefixConstant        = "CMMC "
	nist800171DisplayNameConstant    = "NIST SP 800-171"
	allRulesDisplayNameConstant      = "All Rules (complete)"
	byodUppercaseReplacementConstant = "BYOD"
	enterpriseReplacementConstant    = "Enterprise"
	cisWordConstant                  = "cis "
	indigoWordConstant               = "indigo "
	cmmcWordConstant                 = "cmmc "
	byodFragmentConstant             = "byod"
	enterpriseFragmentConstant       = "enterprise"
	indigoFragmentConstant           = "indigo"
	cisFragmentConstant              = "cis"
	nist80053FragmentConstant        = "800-53"
	nist800171FragmentConstant       = "800-171"
	cmmcFragmentConstant             = "cmmc"
	cnssiFragmentConstant            = "cnssi"
	allRulesFragmentConstant         = "all_rules"
)

// DisplayNameForBaselineID derives the human-readable name shown for a
// baseline identifier, following the compliance project's labeling conventions.
func DisplayNameForBaselineID(baselineID string) string {
	lowercaseID := strings.ToLower(baselineID)
	spacedName := strings.NewReplacer("_", " ", "-", " ").Replace(baselineID)
	underscoreSpacedName := strings.ReplaceAll(baselineID, "_", " ")

	switch {
	case strings.Contains(lowercaseID, byodFragmentConstant):
		withoutPrefix := strings.ReplaceAll(spacedName, cisWordConstant, "")
		return cisDisplayPrefixConstant + capitalizeWords(strings.ReplaceAll(withoutPrefix, byodFragmentConstant, byodUppercaseReplacementConstant))
	case strings.Contains(lowercaseID, enterpriseFragmentConstant):
		withoutPrefix := strings.ReplaceAll(spacedName, cisWordConstant, "")
		return cisDisplayPrefixConstant + capitalizeWords(strings.ReplaceAll(withoutPrefix, enterpriseFragmentConstant, enterpriseReplacementConstant))
	case strings.Contains(lowercaseID, indigoFragmentConstant):
		return indigoDisplayPrefixConstant + capitalizeWords(strings.ReplaceAll(spacedName, indigoWordConstant, ""))
	case strings.Contains(lowercaseID, cisFragmentConstant):
		return cisDisplayPrefixConstant + capitalizeWords(strings.ReplaceAll(spacedName, cisWordConstant, ""))
	case strings.Contains(baselineID, nist80053FragmentConstant):
		return nistDisplayPrefixConstant + capitalizeWords(underscoreSpacedName)
	case strings.Contains(baselineID, nist800171FragmentConstant):
		return nist800171DisplayNameConstant
	case strings.Contains(lowercaseID, cmmcFragmentConstant):
		return cmmcDisplayPrefixConstant + capitalizeWords(strings.ReplaceAll(spacedName, cmmcWordConstant, ""))
	case strings.Contains(lowercaseID, cnssiFragmentConstant):
		return strings.ToUpper(underscoreSpacedName)
	case strings.Contains(lowercaseID, allRulesFragmentConstant):
		return allRulesDisplayNameConstant
	default:
		return capitalizeWords(spacedName)
	}
}

// capitalizeWords uppercases the first letter of each space-separated word and
// leaves the remaining characters untouched, so acronyms survive.
func capitalizeWords(value string) string {
	words := strings.Fields(value)
	for wordIndex, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[wordIndex] = string(runes)
	}
	return strings.Join(words, " ")
}
