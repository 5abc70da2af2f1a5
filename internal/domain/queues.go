package domain

var gameTypes = map[int]string{
	400: "Normal Draft",
	420: "Ranked Solo",
	430: "Normal Blind",
	440: "Ranked Flex",
	450: "ARAM",
	700: "CLASH",
	830: "Co-op vs AI",
	840: "Co-op vs AI",
	850: "Co-op vs AI",
	900: "URF",
}

func QueueLabel(queueID int) string {
	if label, ok := gameTypes[queueID]; ok {
		return label
	}
	return "Unknown"
}

// Roles in display order.
var Roles = []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}

func IsRole(position string) bool {
	for _, r := range Roles {
		if r == position {
			return true
		}
	}
	return false
}
