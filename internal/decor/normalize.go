package decor

import "strings"

const (
	DefaultStoneType = StoneQuartz
	DefaultSurface   = SurfaceGlossy
)

// stoneAliases maps backend spellings onto the closed stone type set.
var stoneAliases = map[string]StoneType{
	// exact values
	"Акрил":        StoneAcrylic,
	"Кварц":        StoneQuartz,
	"Гранит":       StoneGranite,
	"Керамогранит": StonePorcelain,
	"Мрамор":       StoneMarble,
	"Кварцит":      StoneQuartzite,
	// variants seen in the feed
	"Quartz":              StoneQuartz,
	"Кварцевый агломерат": StoneQuartz,
}

var surfaceAliases = map[string]SurfaceType{
	"Глянец":    SurfaceGlossy,
	"Мат":       SurfaceMatte,
	"Глянцевая": SurfaceGlossy,
	"Матовая":   SurfaceMatte,
}

// ToStoneType maps a raw API value onto a known StoneType. Unknown values
// fall back to DefaultStoneType; it never fails.
func ToStoneType(raw string) StoneType {
	key := strings.TrimSpace(raw)
	for _, s := range AllStoneTypes {
		if string(s) == key {
			return s
		}
	}
	if s, ok := stoneAliases[key]; ok {
		return s
	}
	return DefaultStoneType
}

// ToSurfaceType maps a raw API value onto a known SurfaceType, falling back
// to DefaultSurface.
func ToSurfaceType(raw string) SurfaceType {
	key := strings.TrimSpace(raw)
	for _, s := range AllSurfaces {
		if string(s) == key {
			return s
		}
	}
	if s, ok := surfaceAliases[key]; ok {
		return s
	}
	return DefaultSurface
}
