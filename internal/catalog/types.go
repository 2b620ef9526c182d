package catalog

import (
	"fmt"
	"sort"
	"strconv"
)

// PlatformFamily identifies the product line a release branch tracks.
type PlatformFamily string

// Platform families recognized by the branch catalog.
const (
	PlatformFamilyMacOS    PlatformFamily = "macOS"
	PlatformFamilyIOS      PlatformFamily = "iOS/iPadOS"
	PlatformFamilyVisionOS PlatformFamily = "visionOS"
	PlatformFamilyUnknown  PlatformFamily = "unknown"
)

var platformFamilyDisplayOrder = map[PlatformFamily]int{
	PlatformFamilyMacOS:    0,
	PlatformFamilyIOS:      1,
	PlatformFamilyVisionOS: 2,
	PlatformFamilyUnknown:  3,
}

func (family PlatformFamily) displayRank() int {
	if rank, known := platformFamilyDisplayOrder[family]; known {
		return rank
	}
	return len(platformFamilyDisplayOrder)
}

// ReleaseVersion captures the numeric release carried in a branch name.
type ReleaseVersion struct {
	Major int
	Minor int
}

// Compare orders release versions numerically; newer releases compare greater.
func (version ReleaseVersion) Compare(other ReleaseVersion) int {
	if version.Major != other.Major {
		if version.Major < other.Major {
			return -1
		}
		return 1
	}
	if version.Minor != other.Minor {
		if version.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// String renders the version the way release branch names spell it.
func (version ReleaseVersion) String() string {
	if version.Minor > 0 {
		return fmt.Sprintf("%d.%d", version.Major, version.Minor)
	}
	return strconv.Itoa(version.Major)
}

// BranchRef describes one selectable branch in the remote catalog.
type BranchRef struct {
	Name         string
	Family       PlatformFamily
	Version      ReleaseVersion
	DisplayLabel string
}

// SortBranchRefs orders refs by platform family, newest release first, then branch name.
func SortBranchRefs(branchRefs []BranchRef) {
	sort.SliceStable(branchRefs, func(firstIndex int, secondIndex int) bool {
		firstRef := branchRefs[firstIndex]
		secondRef := branchRefs[secondIndex]
		if firstRef.Family != secondRef.Family {
			return firstRef.Family.displayRank() < secondRef.Family.displayRank()
		}
		if comparison := firstRef.Version.Compare(secondRef.Version); comparison != 0 {
			return comparison > 0
		}
		return firstRef.Name < secondRef.Name
	})
}
