// Package assets bundles the scene descriptions shipped with the game.
package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed all:maps
var mapFS embed.FS

// Maps returns the bundled maps rooted so a map id resolves directly.
func Maps() fs.FS {
	sub, err := fs.Sub(mapFS, "maps")
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}

// ListMaps returns the sorted ids of every bundled map.
func ListMaps() []string {
	entries, err := fs.ReadDir(mapFS, "maps")
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		switch ext {
		case ".yaml", ".yml", ".tmx":
		default:
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
