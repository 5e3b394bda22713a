package fontcolor_test

import (
	"testing"

	"fontcolor/config"
	"fontcolor/fontcolor"
)

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		name string
		defs []config.ColorDefinition
		want []fontcolor.ColorOption
	}{
		{
			name: "label defaults to color as written",
			defs: []config.ColorDefinition{{Color: " rgb( 1, 2, 3 ) "}},
			want: []fontcolor.ColorOption{{Model: "rgb(1,2,3)", Label: "rgb( 1, 2, 3 )", ID: "rgb-1-2-3", Style: "color:rgb(1,2,3);"}},
		},
		{
			name: "explicit border kept",
			defs: []config.ColorDefinition{{Color: "#000", Label: "Black", HasBorder: true}},
			want: []fontcolor.ColorOption{{Model: "#000", Label: "Black", HasBorder: true, ID: "black", Style: "color:#000;"}},
		},
		{
			name: "bare light color gets border",
			defs: []config.ColorDefinition{config.NewColorDefinition("#fff"), config.NewColorDefinition("navy")},
			want: []fontcolor.ColorOption{
				{Model: "#fff", Label: "#fff", HasBorder: true, ID: "fff", Style: "color:#fff;"},
				{Model: "navy", Label: "navy", ID: "navy", Style: "color:navy;"},
			},
		},
		{
			name: "mapping light color without border",
			defs: []config.ColorDefinition{{Color: "#fff", Label: "White"}},
			want: []fontcolor.ColorOption{{Model: "#fff", Label: "White", ID: "white", Style: "color:#fff;"}},
		},
		{
			name: "duplicates dropped",
			defs: []config.ColorDefinition{
				{Color: "rgb(1,2,3)", Label: "First"},
				{Color: "rgb( 1, 2, 3 )", Label: "Second"},
			},
			want: []fontcolor.ColorOption{{Model: "rgb(1,2,3)", Label: "First", ID: "first", Style: "color:rgb(1,2,3);"}},
		},
		{
			name: "empty colors skipped",
			defs: []config.ColorDefinition{{Color: "   ", Label: "Nothing"}},
			want: []fontcolor.ColorOption{},
		},
		{
			name: "same labels get unique ids",
			defs: []config.ColorDefinition{
				{Color: "red", Label: "Warm"},
				{Color: "orange", Label: "Warm"},
				{Color: "yellow", Label: "warm"},
			},
			want: []fontcolor.ColorOption{
				{Model: "red", Label: "Warm", ID: "warm", Style: "color:red;"},
				{Model: "orange", Label: "Warm", ID: "warm-2", Style: "color:orange;"},
				{Model: "yellow", Label: "warm", ID: "warm-3", Style: "color:yellow;"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fontcolor.NormalizeOptions(tt.defs)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d options, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("option %d:\ngot  %+v\nwant %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSortOptions(t *testing.T) {
	opts := fontcolor.NormalizeOptions([]config.ColorDefinition{
		{Color: "#010", Label: "Color10"},
		{Color: "#002", Label: "color2"},
		{Color: "#001", Label: "Color1"},
		{Color: "#abc", Label: "Azure"},
	})

	sorted := fontcolor.SortOptions(opts)
	want := []string{"Azure", "Color1", "color2", "Color10"}
	for i, w := range want {
		if sorted[i].Label != w {
			t.Errorf("position %d: got %q, want %q", i, sorted[i].Label, w)
		}
	}
	if opts[0].Label != "Color10" {
		t.Error("SortOptions should not modify its argument")
	}
}

func TestFind(t *testing.T) {
	opts := fontcolor.NormalizeOptions(fontcolor.DefaultColors())

	o, ok := fontcolor.Find(opts, "hsl( 0, 0%, 100% )")
	if !ok {
		t.Fatal("expected white to be found")
	}
	if o.Label != "White" || !o.HasBorder {
		t.Errorf("unexpected option %+v", o)
	}
	if _, ok := fontcolor.Find(opts, "#fff"); ok {
		t.Error("colors are matched by normalized value, not by resolved color")
	}
}
