package app

import (
	"fmt"
	"strconv"
	"strings"
)

type AtlasItem struct {
	Name         string
	Rotate       int // degrees, 0 or 90
	X, Y         int // position in the page
	W, H         int // size in the page
	OrigW, OrigH int
	OrigX, OrigY int
	Index        int
}

type AtlasHeader struct {
	Image            string
	W, H             int
	Format           string
	WFilter, HFilter string
	Repeat           string
}

// Atlas is a single page libgdx texture atlas as exported by spine.
type Atlas struct {
	Header *AtlasHeader
	Items  []*AtlasItem
}

func (a *Atlas) Item(name string) (*AtlasItem, bool) {
	for _, item := range a.Items {
		if item.Name == name {
			return item, true
		}
	}
	return nil, false
}

func ParseAtlas(data string) (*Atlas, error) {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	// skip leading blank lines, the first real line names the page image
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("atlas: empty")
	}

	header := &AtlasHeader{Image: strings.TrimSpace(lines[0])}
	lines = lines[1:]
	for len(lines) > 0 && strings.Contains(lines[0], ":") {
		if err := header.set(lines[0]); err != nil {
			return nil, err
		}
		lines = lines[1:]
	}

	atlas := &Atlas{Header: header}
	var item *AtlasItem
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.Contains(line, ":") {
			if item != nil {
				atlas.Items = append(atlas.Items, item.finish())
			}
			item = &AtlasItem{Name: strings.TrimSpace(line), Index: -1}
			continue
		}
		if item == nil {
			return nil, fmt.Errorf("atlas: property before region: %q", line)
		}
		if err := item.set(line); err != nil {
			return nil, fmt.Errorf("atlas: region %q: %w", item.Name, err)
		}
	}
	if item != nil {
		atlas.Items = append(atlas.Items, item.finish())
	}

	return atlas, nil
}

func (h *AtlasHeader) set(line string) error {
	key, _ := splitProperty(line)
	switch key {
	case "size":
		return parsePair(line, key, &h.W, &h.H)
	case "format":
		h.Format = parseStrList(line, "format")[0]
	case "filter":
		filter := parseStrList(line, "filter")
		h.WFilter = filter[0]
		h.HFilter = filter[len(filter)-1]
	case "repeat":
		h.Repeat = parseStrList(line, "repeat")[0]
	}
	return nil
}

func (i *AtlasItem) set(line string) error {
	key, _ := splitProperty(line)
	switch key {
	case "rotate":
		value := parseStrList(line, "rotate")[0]
		switch value {
		case "true":
			i.Rotate = 90
		case "false":
			i.Rotate = 0
		default:
			degrees, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("rotate %q: %w", value, err)
			}
			i.Rotate = degrees
		}
		if i.Rotate != 0 && i.Rotate != 90 {
			return fmt.Errorf("unsupported rotate %d", i.Rotate)
		}
	case "xy":
		return parsePair(line, key, &i.X, &i.Y)
	case "size":
		return parsePair(line, key, &i.W, &i.H)
	case "orig":
		return parsePair(line, key, &i.OrigW, &i.OrigH)
	case "offset":
		return parsePair(line, key, &i.OrigX, &i.OrigY)
	case "bounds":
		values, err := parseIntList(line, key)
		if err != nil {
			return err
		}
		if len(values) != 4 {
			return fmt.Errorf("bounds needs 4 values")
		}
		i.X, i.Y, i.W, i.H = values[0], values[1], values[2], values[3]
	case "index":
		values, err := parseIntList(line, key)
		if err != nil {
			return err
		}
		i.Index = values[0]
	}
	return nil
}

func (i *AtlasItem) finish() *AtlasItem {
	if i.OrigW == 0 && i.OrigH == 0 {
		i.OrigW, i.OrigH = i.W, i.H
	}
	if i.Rotate == 90 { // size is given unrotated, the page holds it turned
		i.W, i.H = i.H, i.W
	}
	return i
}

func splitProperty(line string) (string, string) {
	key, value, _ := strings.Cut(strings.TrimSpace(line), ":")
	return strings.TrimSpace(key), strings.TrimSpace(value)
}

func parseStrList(line string, name string) []string {
	_, value := splitProperty(line)
	items := strings.Split(value, ",")
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, strings.TrimSpace(item))
	}
	return res
}

func parseIntList(line string, name string) ([]int, error) {
	items := parseStrList(line, name)
	res := make([]int, 0, len(items))
	for _, item := range items {
		val, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		res = append(res, val)
	}
	return res, nil
}

func parsePair(line string, name string, a, b *int) error {
	values, err := parseIntList(line, name)
	if err != nil {
		return err
	}
	if len(values) != 2 {
		return fmt.Errorf("%s needs 2 values", name)
	}
	*a, *b = values[0], values[1]
	return nil
}
