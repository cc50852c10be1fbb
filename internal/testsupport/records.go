package testsupport

import "cityfeed/internal/violation"

// RawRecord builds a well-formed raw violation record with distinguishing
// values derived from the provided suffix.
func RawRecord(suffix string) violation.RawRecord {
	return violation.RawRecord{
		BusinessName: "Business " + suffix,
		Address:      suffix + " Main St",
		Code:         "C-" + suffix,
		Description:  "Description for " + suffix,
		Date:         "2025-10-07",
		Status:       "HE_Fail",
		Neighborhood: "Downtown",
	}
}
