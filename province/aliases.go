package province

// canonicalProvinces lists the 38 provinces in the order the regional
// indicator tables use, each with the spellings seen across survey exports,
// English-language datasets and boundary files. Variants are matched after
// Clean, so case, punctuation and diacritics need no separate entries.
var canonicalProvinces = []struct {
	name     string
	variants []string
}{
	{"Aceh", []string{"Nanggroe Aceh Darussalam", "NAD", "DI Aceh", "Daerah Istimewa Aceh"}},
	{"Sumatera Utara", []string{"North Sumatera", "North Sumatra", "Sumut"}},
	{"Sumatera Barat", []string{"West Sumatera", "West Sumatra", "Sumbar"}},
	{"Riau", nil},
	{"Jambi", nil},
	{"Sumatera Selatan", []string{"South Sumatera", "South Sumatra", "Sumsel"}},
	{"Bengkulu", nil},
	{"Lampung", nil},
	{"Kepulauan Bangka Belitung", []string{"Bangka Belitung", "Bangka Belitung Islands", "Babel", "Kep Babel"}},
	{"Kepulauan Riau", []string{"Riau Islands", "Kepri"}},
	{"DKI Jakarta", []string{"Jakarta", "DKI", "DK Jakarta", "Special Capital Region of Jakarta", "Jakarta Special Capital Region"}},
	{"Jawa Barat", []string{"West Java", "Jabar"}},
	{"Jawa Tengah", []string{"Central Java", "Jateng"}},
	{"DI Yogyakarta", []string{"Yogyakarta", "DIY", "Jogja", "Jogjakarta", "Yogya", "Special Region of Yogyakarta"}},
	{"Jawa Timur", []string{"East Java", "Jatim"}},
	{"Banten", []string{"Probanten"}},
	{"Bali", nil},
	{"Nusa Tenggara Barat", []string{"West Nusa Tenggara", "NTB"}},
	{"Nusa Tenggara Timur", []string{"East Nusa Tenggara", "NTT"}},
	{"Kalimantan Barat", []string{"West Kalimantan", "Kalbar"}},
	{"Kalimantan Tengah", []string{"Central Kalimantan", "Kalteng"}},
	{"Kalimantan Selatan", []string{"South Kalimantan", "Kalsel"}},
	{"Kalimantan Timur", []string{"East Kalimantan", "Kaltim"}},
	{"Kalimantan Utara", []string{"North Kalimantan", "Kaltara"}},
	{"Sulawesi Utara", []string{"North Sulawesi", "Sulut"}},
	{"Sulawesi Tengah", []string{"Central Sulawesi", "Sulteng"}},
	{"Sulawesi Selatan", []string{"South Sulawesi", "Sulsel"}},
	{"Sulawesi Tenggara", []string{"Southeast Sulawesi", "South East Sulawesi", "Sultra"}},
	{"Gorontalo", nil},
	{"Sulawesi Barat", []string{"West Sulawesi", "Sulbar"}},
	{"Maluku", []string{"Moluccas"}},
	{"Maluku Utara", []string{"North Maluku", "Malut"}},
	{"Papua", nil},
	{"Papua Barat", []string{"West Papua", "Pabar"}},
	{"Papua Tengah", []string{"Central Papua"}},
	{"Papua Pegunungan", []string{"Highland Papua", "Papua Highlands"}},
	{"Papua Selatan", []string{"South Papua"}},
	{"Papua Barat Daya", []string{"Southwest Papua", "South West Papua"}},
}
