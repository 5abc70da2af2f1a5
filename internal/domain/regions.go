package domain

import "strings"

var routingRegions = map[string]string{
	"euw1": "europe",
	"eun1": "europe",
	"tr1":  "europe",
	"ru":   "europe",
	"me1":  "europe",
	"na1":  "americas",
	"br1":  "americas",
	"la1":  "americas",
	"la2":  "americas",
	"kr":   "asia",
	"jp1":  "asia",
	"oc1":  "sea",
	"ph2":  "sea",
	"sg2":  "sea",
	"th2":  "sea",
	"tw2":  "sea",
	"vn2":  "sea",
}

func IsPlatform(region string) bool {
	_, ok := routingRegions[strings.ToLower(region)]
	return ok
}

// RoutingRegion maps a platform (euw1) to the regional cluster (europe)
// serving the match endpoints. Unknown platforms fall back to europe.
func RoutingRegion(platform string) string {
	if r, ok := routingRegions[strings.ToLower(platform)]; ok {
		return r
	}
	return "europe"
}
