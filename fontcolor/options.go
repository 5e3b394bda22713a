package fontcolor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"

	"fontcolor/color"
	"fontcolor/config"
)

// ColorOption is a palette entry ready for use.
type ColorOption struct {
	Model     string // attribute value, normalized color
	Label     string
	HasBorder bool   // color is too light to be seen without border
	ID        string // slug of the label, unique within palette
	Style     string // inline style producing the color
}

// NormalizeOptions turns configured colors into palette options. Label
// defaults to the color as written. Bare entries get border when color is
// close to white. Entries normalizing to the same color are kept once, the
// first one wins.
func NormalizeOptions(defs []config.ColorDefinition) []ColorOption {
	out := make([]ColorOption, 0, len(defs))
	models := make(map[string]bool, len(defs))
	ids := make(map[string]bool, len(defs))

	for _, d := range defs {
		m := color.Normalize(d.Color)
		if m == "" || models[m] {
			continue
		}
		models[m] = true

		label := d.Label
		if label == "" {
			label = strings.TrimSpace(d.Color)
		}
		out = append(out, ColorOption{
			Model:     m,
			Label:     label,
			HasBorder: d.HasBorder || (d.Bare && color.NeedsBorder(m)),
			ID:        uniqueID(ids, label, m),
			Style:     StyleProperty + ":" + color.Format(m) + ";",
		})
	}
	return out
}

func uniqueID(seen map[string]bool, label, model string) string {
	base := slug.Make(label)
	if base == "" {
		base = slug.Make(model)
	}
	if base == "" {
		base = "color"
	}
	id := base
	for i := 2; seen[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	seen[id] = true
	return id
}

// SortOptions returns options ordered by label in natural order, so
// "Color2" goes before "Color10". Case is ignored.
func SortOptions(opts []ColorOption) []ColorOption {
	out := slices.Clone(opts)
	slices.SortStableFunc(out, func(a, b ColorOption) int {
		la, lb := strings.ToLower(a.Label), strings.ToLower(b.Label)
		switch {
		case natural.Less(la, lb):
			return -1
		case natural.Less(lb, la):
			return 1
		}
		return 0
	})
	return out
}

// Find returns option with given model value.
func Find(opts []ColorOption, value string) (ColorOption, bool) {
	value = color.Normalize(value)
	i := slices.IndexFunc(opts, func(o ColorOption) bool { return o.Model == value })
	if i < 0 {
		return ColorOption{}, false
	}
	return opts[i], true
}
