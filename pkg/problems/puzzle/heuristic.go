package puzzle

import "fmt"

// Manhattan sums, over all tiles, the grid distance between the tile and
// its goal position. It is admissible and consistent.
func Manhattan(b Board) float64 {
	size := b.Size()
	sum := 0
	for i := 0; i < b.cells(); i++ {
		t := int(b.tiles[i])
		if t == blank {
			continue
		}
		target := t - 1
		sum += abs(i/size-target/size) + abs(i%size-target%size)
	}
	return float64(sum)
}

// Misplaced counts the tiles that are not on their goal position.
func Misplaced(b Board) float64 {
	count := 0
	for i := 0; i < b.cells(); i++ {
		t := int(b.tiles[i])
		if t != blank && t != i+1 {
			count++
		}
	}
	return float64(count)
}

// HeuristicByName resolves the names accepted on the command line.
func HeuristicByName(name string) (func(Board) float64, error) {
	switch name {
	case "manhattan":
		return Manhattan, nil
	case "misplaced":
		return Misplaced, nil
	}
	return nil, fmt.Errorf("unknown heuristic %q: valid values are manhattan and misplaced", name)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
