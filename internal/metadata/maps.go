package metadata

import "strings"

// Map type ids as reported by the upstream ladder API.
var mapNames = map[int]string{
	9:   "Arabia",
	10:  "Archipelago",
	11:  "Baltic",
	12:  "Black Forest",
	13:  "Coastal",
	14:  "Continental",
	15:  "Crater Lake",
	16:  "Fortress",
	17:  "Gold Rush",
	18:  "Highland",
	19:  "Islands",
	20:  "Mediterranean",
	21:  "Migration",
	22:  "Rivers",
	23:  "Team Islands",
	24:  "Full Random",
	25:  "Scandinavia",
	26:  "Mongolia",
	27:  "Yucatan",
	28:  "Salt Marsh",
	29:  "Arena",
	31:  "Oasis",
	32:  "Ghost Lake",
	33:  "Nomad",
	67:  "Acropolis",
	68:  "Budapest",
	69:  "Cenotes",
	70:  "City of Lakes",
	71:  "Golden Pit",
	72:  "Hideout",
	73:  "Hill Fort",
	74:  "Lombardia",
	75:  "Steppe",
	76:  "Valley",
	77:  "MegaRandom",
	78:  "Hamburger",
	140: "Golden Swamp",
	141: "Four Lakes",
	142: "Land Nomad",
}

func MapName(id int) (string, bool) {
	name, ok := mapNames[id]
	return name, ok
}

// NormalizeMap canonicalizes a user supplied map name, so filters like
// "black forest" match records parsed from the upstream API.
func NormalizeMap(name string) (string, bool) {
	for _, known := range mapNames {
		if strings.EqualFold(known, name) {
			return known, true
		}
	}
	return "", false
}

// Ranked queue ids on the upstream ladder.
const (
	LeaderboardDeathmatch1v1  = 1
	LeaderboardDeathmatchTeam = 2
	LeaderboardRandomMap1v1   = 3
	LeaderboardRandomMapTeam  = 4
)
