package gallery

import (
	"path"
	"strings"
)

// Extensions lists the identifier suffixes stripped by [Key], matched
// case-insensitively.
var Extensions = []string{".dzi", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".bmp"}

// Key returns the stable key of an image identifier: the identifier with a
// known extension removed. Unknown extensions are kept.
func Key(id string) string {
	ext := path.Ext(id)
	for _, known := range Extensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(id, ext)
		}
	}
	return id
}

var labelReplacer = strings.NewReplacer("-", " ", "_", " ")

// Label returns display text derived from an identifier.
func Label(id string) string {
	return labelReplacer.Replace(Key(id))
}

// IndexByKey maps keys to image indices. When keys collide, the first
// image wins.
func IndexByKey(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		k := Key(id)
		if _, ok := m[k]; !ok {
			m[k] = i
		}
	}
	return m
}
