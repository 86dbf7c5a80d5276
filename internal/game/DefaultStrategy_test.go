package game

import "testing"

func TestDefaultStrategy(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want Direction
	}{
		{
			name: "keeps heading towards food",
			snap: Snapshot{Rows: 9, Cols: 9, Snake: []Cell{{4, 4}, {4, 3}, {4, 2}}, Direction: Right, Food: Cell{4, 8}, HasFood: true},
			want: Right,
		},
		{
			name: "turns towards food",
			snap: Snapshot{Rows: 9, Cols: 9, Snake: []Cell{{4, 4}, {4, 3}, {4, 2}}, Direction: Right, Food: Cell{0, 4}, HasFood: true},
			want: Up,
		},
		{
			name: "never reverses and keeps direction on ties",
			snap: Snapshot{Rows: 9, Cols: 9, Snake: []Cell{{4, 4}, {4, 3}, {4, 2}}, Direction: Right, Food: Cell{4, 0}, HasFood: true},
			want: Right,
		},
		{
			name: "avoids the wall",
			snap: Snapshot{Rows: 9, Cols: 9, Snake: []Cell{{4, 8}, {4, 7}, {4, 6}}, Direction: Right, Food: Cell{8, 8}, HasFood: true},
			want: Down,
		},
		{
			name: "avoids its own body",
			snap: Snapshot{Rows: 9, Cols: 9, Snake: []Cell{{4, 4}, {4, 3}, {3, 3}, {3, 4}, {3, 5}}, Direction: Right, Food: Cell{0, 4}, HasFood: true},
			want: Right,
		},
		{
			name: "trapped keeps direction",
			snap: Snapshot{Rows: 3, Cols: 3, Snake: []Cell{{1, 2}, {1, 1}, {0, 1}, {0, 2}, {2, 2}, {2, 1}}, Direction: Right, Food: Cell{0, 0}, HasFood: true},
			want: Right,
		},
		{
			name: "no food keeps direction when safe",
			snap: Snapshot{Rows: 9, Cols: 9, Snake: []Cell{{4, 4}, {4, 3}, {4, 2}}, Direction: Right},
			want: Right,
		},
	}

	strategy := &DefaultStrategy{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := strategy.NextDirection(tc.snap); got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
