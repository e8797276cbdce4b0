package dataset

import "github.com/spektr-org/finlit/province"

// IndexRegional keys regional rows by canonical province. The first row of
// a province wins; later ones are reported as duplicates in input order.
// A nil normalizer uses the built-in alias table.
func IndexRegional(rows []RegionalIndicator, norm *province.Normalizer) (map[string]RegionalIndicator, []string) {
	canon := province.Normalize
	if norm != nil {
		canon = norm.Normalize
	}

	index := make(map[string]RegionalIndicator, len(rows))
	var duplicates []string
	for _, r := range rows {
		key := canon(r.Province)
		if _, seen := index[key]; seen {
			duplicates = append(duplicates, r.Province)
			continue
		}
		index[key] = r
	}
	return index, duplicates
}
