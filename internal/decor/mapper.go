package decor

import (
	"net/url"
	"strconv"
	"time"

	"edenstone/internal/utils"
)

// MapAPIDecor converts the wire representation into a DecorItem.
func MapAPIDecor(d APIDecor) DecorItem {
	item := DecorItem{
		ID:          strconv.FormatInt(d.ID, 10),
		Slug:        d.Slug,
		Name:        d.Name,
		Code:        utils.PtrString(d.Code),
		Brand:       d.Brand,
		StoneType:   ToStoneType(d.StoneType),
		Surface:     ToSurfaceType(d.Surface),
		Price:       d.Price,
		CreatedAt:   time.Unix(d.CreatedAt, 0).UTC(),
		Image:       encodeURI(d.Image),
		Description: utils.PtrString(d.Description),
	}

	if len(d.Images) > 0 {
		item.Images = make([]string, 0, len(d.Images))
		for _, img := range d.Images {
			item.Images = append(item.Images, encodeURI(img))
		}
	}

	return item
}

func MapAPIDecors(in []APIDecor) []DecorItem {
	out := make([]DecorItem, 0, len(in))
	for _, d := range in {
		out = append(out, MapAPIDecor(d))
	}
	return out
}

// encodeURI percent-encodes characters that are not valid in a URI (spaces,
// Cyrillic file names) and leaves an already valid URI unchanged.
func encodeURI(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
