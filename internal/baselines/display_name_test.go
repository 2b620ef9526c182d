package baselines

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayNameForBaselineIDLabelsKnownCatalogs(t *testing.T) {
	testCases := []struct {
		name                string
		baselineID          string
		expectedDisplayName string
	}{
		{
			name:                "CISLevelOne",
			baselineID:          "cis_lvl1",
			expectedDisplayName: "CIS Lvl1",
		},
		{
			name:                "CISLevelTwo",
			baselineID:          "cis_lvl2",
			expectedDisplayName: "CIS Lvl2",
		},
		{
			name:                "CISLevelOneBYOD",
			baselineID:          "cis_lvl1_byod",
			expectedDisplayName: "CIS Lvl1 BYOD",
		},
		{
			name:                "CISLevelOneEnterprise",
			baselineID:          "cis_lvl1_enterprise",
			expectedDisplayName: "CIS Lvl1 Enterprise",
		},
		{
			name:                "IndigoBase",
			baselineID:          "indigo_base",
			expectedDisplayName: "Indigo Base",
		},
		{
			name:                "IndigoHigh",
			baselineID:          "indigo_high",
			expectedDisplayName: "Indigo High",
		},
		{
			name:                "NISTModerateRevisionFive",
			baselineID:          "800-53r5_moderate",
			expectedDisplayName: "NIST 800-53r5 Moderate",
		},
		{
			name:                "NISTLowRevisionFive",
			baselineID:          "800-53r5_low",
			expectedDisplayName: "NIST 800-53r5 Low",
		},
		{
			name:                "NISTHighRevisionFour",
			baselineID:          "800-53r4_high",
			expectedDisplayName: "NIST 800-53r4 High",
		},
		{
			name:                "NISTSpecialPublication",
			baselineID:          "800-171",
			expectedDisplayName: "NIST SP 800-171",
		},
		{
			name:                "CMMCLevelTwo",
			baselineID:          "cmmc_lvl2",
			expectedDisplayName: "CMMC Lvl2",
		},
		{
			name:                "CNSSIHighImpact",
			baselineID:          "cnssi_1253_high",
			expectedDisplayName: "CNSSI 1253 HIGH",
		},
		{
			name:                "CompleteRuleCatalog",
			baselineID:          "all_rules",
			expectedDisplayName: "All Rules (complete)",
		},
		{
			name:                "UnrecognizedSingleWord",
			baselineID:          "recommended",
			expectedDisplayName: "Recommended",
		},
		{
			name:                "UnrecognizedUnderscoreSeparated",
			baselineID:          "custom_profile",
			expectedDisplayName: "Custom Profile",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedDisplayName, DisplayNameForBaselineID(testCase.baselineID))
		})
	}
}
