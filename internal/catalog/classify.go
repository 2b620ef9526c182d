package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	mainBranchNameConstant                = "main"
	mainBranchDisplayLabelConstant        = "main (development - not recommended)"
	iosBranchPrefixConstant               = "ios_"
	visionOSBranchPrefixConstant          = "visionos_"
	versionSeparatorConstant              = "."
	macOSDisplayLabelTemplateConstant     = "%s %s %s"
	versionedDisplayLabelTemplateConstant = "%s %s"
	maximumVersionSegmentCountConstant    = 2
)

type macOSRelease struct {
	marketingName string
	version       ReleaseVersion
}

var macOSReleaseCatalog = map[string]macOSRelease{
	"tahoe":    {marketingName: "Tahoe", version: ReleaseVersion{Major: 26}},
	"sequoia":  {marketingName: "Sequoia", version: ReleaseVersion{Major: 15}},
	"sonoma":   {marketingName: "Sonoma", version: ReleaseVersion{Major: 14}},
	"ventura":  {marketingName: "Ventura", version: ReleaseVersion{Major: 13}},
	"monterey": {marketingName: "Monterey", version: ReleaseVersion{Major: 12}},
	"big_sur":  {marketingName: "Big Sur", version: ReleaseVersion{Major: 11}},
	"catalina": {marketingName: "Catalina", version: ReleaseVersion{Major: 10, Minor: 15}},
}

var maintenanceBranchPrefixes = []string{"dev", "nist-", "505-"}

var maintenanceBranchFragments = []string{"_fix", "_typo", "create-"}

// Classification describes how a remote branch name maps onto a platform release.
type Classification struct {
	Family       PlatformFamily
	Version      ReleaseVersion
	DisplayLabel string
}

// ClassifyBranchName resolves the platform release a branch name refers to.
// The boolean result reports whether the branch belongs in the catalog;
// maintenance branches are excluded.
func ClassifyBranchName(branchName string) (Classification, bool) {
	trimmedName := strings.TrimSpace(branchName)
	if len(trimmedName) == 0 {
		return Classification{}, false
	}
	if release, recognized := macOSReleaseCatalog[trimmedName]; recognized {
		displayLabel := fmt.Sprintf(macOSDisplayLabelTemplateConstant, PlatformFamilyMacOS, release.version, release.marketingName)
		return Classification{Family: PlatformFamilyMacOS, Version: release.version, DisplayLabel: displayLabel}, true
	}
	if version, parsed := parseVersionSuffix(trimmedName, iosBranchPrefixConstant); parsed {
		displayLabel := fmt.Sprintf(versionedDisplayLabelTemplateConstant, PlatformFamilyIOS, version)
		return Classification{Family: PlatformFamilyIOS, Version: version, DisplayLabel: displayLabel}, true
	}
	if version, parsed := parseVersionSuffix(trimmedName, visionOSBranchPrefixConstant); parsed {
		displayLabel := fmt.Sprintf(versionedDisplayLabelTemplateConstant, PlatformFamilyVisionOS, version)
		return Classification{Family: PlatformFamilyVisionOS, Version: version, DisplayLabel: displayLabel}, true
	}
	if trimmedName == mainBranchNameConstant {
		return Classification{Family: PlatformFamilyUnknown, DisplayLabel: mainBranchDisplayLabelConstant}, true
	}
	if isMaintenanceBranch(trimmedName) {
		return Classification{}, false
	}
	return Classification{Family: PlatformFamilyUnknown, DisplayLabel: trimmedName}, true
}

func parseVersionSuffix(branchName string, prefix string) (ReleaseVersion, bool) {
	if !strings.HasPrefix(branchName, prefix) {
		return ReleaseVersion{}, false
	}
	return parseReleaseVersion(strings.TrimPrefix(branchName, prefix))
}

func parseReleaseVersion(versionText string) (ReleaseVersion, bool) {
	versionSegments := strings.Split(versionText, versionSeparatorConstant)
	if len(versionSegments) == 0 || len(versionSegments) > maximumVersionSegmentCountConstant {
		return ReleaseVersion{}, false
	}
	parsedSegments := make([]int, 0, maximumVersionSegmentCountConstant)
	for _, versionSegment := range versionSegments {
		segmentValue, parseError := strconv.Atoi(versionSegment)
		if parseError != nil || segmentValue < 0 {
			return ReleaseVersion{}, false
		}
		parsedSegments = append(parsedSegments, segmentValue)
	}
	parsedVersion := ReleaseVersion{Major: parsedSegments[0]}
	if len(parsedSegments) > 1 {
		parsedVersion.Minor = parsedSegments[1]
	}
	return parsedVersion, true
}

func isMaintenanceBranch(branchName string) bool {
	for _, maintenancePrefix := range maintenanceBranchPrefixes {
		if strings.HasPrefix(branchName, maintenancePrefix) {
			return true
		}
	}
	for _, maintenanceFragment := range maintenanceBranchFragments {
		if strings.Contains(branchName, maintenanceFragment) {
			return true
		}
	}
	return false
}
