package feed

import (
	"fmt"
	"strconv"
	"strings"

	"cityfeed/internal/violation"
)

// Upstream column names as served by the portal's datastore, with the
// snake_case variants older CSV exports used.
var columnAliases = map[string]string{
	"businessname":   "business_name",
	"business_name":  "business_name",
	"address":        "address",
	"violation":      "violation_code",
	"violation_code": "violation_code",
	"violdesc":       "violation_desc",
	"violation_desc": "violation_desc",
	"violdttm":       "date",
	"date":           "date",
	"result":         "status",
	"status":         "status",
	"neighborhood":   "neighborhood",
}

func mapRecord(row map[string]any) violation.RawRecord {
	fields := make(map[string]string, len(row))
	for name, value := range row {
		canonical, ok := columnAliases[normalizeHeader(name)]
		if !ok {
			continue
		}
		fields[canonical] = scrub(stringify(value))
	}
	return violation.RawRecord{
		BusinessName: fields["business_name"],
		Address:      fields["address"],
		Code:         fields["violation_code"],
		Description:  fields["violation_desc"],
		Date:         fields["date"],
		Status:       fields["status"],
		Neighborhood: fields["neighborhood"],
	}
}

func normalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// scrub drops the placeholder strings the upstream exporter writes for
// absent values.
func scrub(value string) string {
	switch value {
	case "nan", "NaN", "NaT", "None", "null":
		return ""
	}
	return value
}
