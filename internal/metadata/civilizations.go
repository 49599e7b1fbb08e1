package metadata

import "strings"

// Civilization ids as reported by the upstream ladder API.
var civilizationNames = map[int]string{
	0:  "Aztecs",
	1:  "Berbers",
	2:  "Britons",
	3:  "Bulgarians",
	4:  "Burmese",
	5:  "Byzantines",
	6:  "Celts",
	7:  "Chinese",
	8:  "Cumans",
	9:  "Ethiopians",
	10: "Franks",
	11: "Goths",
	12: "Huns",
	13: "Incas",
	14: "Indians",
	15: "Italians",
	16: "Japanese",
	17: "Khmer",
	18: "Koreans",
	19: "Lithuanians",
	20: "Magyars",
	21: "Malay",
	22: "Malians",
	23: "Mayans",
	24: "Mongols",
	25: "Persians",
	26: "Portuguese",
	27: "Saracens",
	28: "Slavs",
	29: "Spanish",
	30: "Tatars",
	31: "Teutons",
	32: "Turks",
	33: "Vietnamese",
	34: "Vikings",
}

func CivilizationName(id int) (string, bool) {
	name, ok := civilizationNames[id]
	return name, ok
}

// NormalizeCivilization canonicalizes a user supplied civilization name, so
// filters like "franks" match records parsed from the upstream API.
func NormalizeCivilization(name string) (string, bool) {
	for _, known := range civilizationNames {
		if strings.EqualFold(known, name) {
			return known, true
		}
	}
	return "", false
}
