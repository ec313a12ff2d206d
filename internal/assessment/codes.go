package assessment

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
)

//go:embed data/commodity_codes.csv
var commodityCodesCSV string

// allowedCodes is the static allow-list of HS commodity codes, built from the
// shipped data file at package init.
var allowedCodes = loadAllowedCodes()

func loadAllowedCodes() map[string]struct{} {
	reader := csv.NewReader(strings.NewReader(commodityCodesCSV))
	records, err := reader.ReadAll()
	if err != nil {
		panic(fmt.Sprintf("malformed commodity code data file: %v", err))
	}

	codes := make(map[string]struct{}, len(records))
	for i, record := range records {
		if i == 0 {
			// header
			continue
		}
		codes[record[0]] = struct{}{}
	}
	return codes
}

// CleanCodes filters the supplied commodity codes against the allow-list.
// Duplicates are collapsed (first occurrence wins). The returned warning is
// empty when every code was valid; otherwise it is one aggregated sentence
// naming the rejected codes.
func CleanCodes(codes []string) ([]string, string) {
	seen := make(map[string]struct{}, len(codes))
	valid := make([]string, 0, len(codes))
	var rejected []string

	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		if _, ok := allowedCodes[code]; ok {
			valid = append(valid, code)
		} else {
			rejected = append(rejected, code)
		}
	}

	if len(rejected) == 0 {
		return valid, ""
	}
	return valid, fmt.Sprintf("The following commodity codes were not valid: %s", strings.Join(rejected, ", "))
}
