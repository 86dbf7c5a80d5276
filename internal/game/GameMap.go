package game

import "math/rand/v2"

// maxFoodDraws bounds the rejection sampling in PlaceFood before it falls back
// to enumerating the free cells.
const maxFoodDraws = 64

// PlaceFood picks a cell uniformly at random among the cells of a rows x cols
// grid that are not in occupied. It returns false when every cell is taken.
func PlaceFood(rng *rand.Rand, rows, cols int, occupied []Cell) (Cell, bool) {
	taken := make(map[Cell]struct{}, len(occupied))
	for _, c := range occupied {
		if c.InBounds(rows, cols) {
			taken[c] = struct{}{}
		}
	}

	total := rows * cols
	free := total - len(taken)
	if free <= 0 {
		return Cell{}, false
	}

	// On a mostly empty grid a handful of draws is enough. Crowded grids skip
	// straight to the enumeration so a near-full board never spins.
	if free*2 >= total {
		for range maxFoodDraws {
			c := Cell{Row: rng.IntN(rows), Col: rng.IntN(cols)}
			if _, ok := taken[c]; !ok {
				return c, true
			}
		}
	}

	freeCells := make([]Cell, 0, free)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := Cell{Row: row, Col: col}
			if _, ok := taken[c]; !ok {
				freeCells = append(freeCells, c)
			}
		}
	}
	return freeCells[rng.IntN(len(freeCells))], true
}
