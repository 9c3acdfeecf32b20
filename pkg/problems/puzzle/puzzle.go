package puzzle

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/operator-framework/frontier/pkg/frontier"
)

const (
	MinSize = 2
	MaxSize = 4

	blank = 0
)

var _ frontier.RandomProblem[Board] = &Puzzle{}
var _ frontier.StateRenderer[Board] = &Puzzle{}

// Board is an N×N sliding-tile position. Tiles are numbered 1..N²-1 and 0
// is the blank. Board is comparable and can be used as a map key.
type Board struct {
	size  uint8
	tiles [MaxSize * MaxSize]uint8
}

// NewBoard builds a board from its tiles in row-major order.
func NewBoard(size int, tiles ...int) (Board, error) {
	if size < MinSize || size > MaxSize {
		return Board{}, fmt.Errorf("invalid size %d: must be between %d and %d", size, MinSize, MaxSize)
	}
	if len(tiles) != size*size {
		return Board{}, fmt.Errorf("invalid board: expected %d tiles, got %d", size*size, len(tiles))
	}
	seen := make([]bool, size*size)
	b := Board{size: uint8(size)}
	for i, t := range tiles {
		if t < 0 || t >= size*size {
			return Board{}, fmt.Errorf("invalid tile %d at position %d", t, i)
		}
		if seen[t] {
			return Board{}, fmt.Errorf("duplicate tile %d", t)
		}
		seen[t] = true
		b.tiles[i] = uint8(t)
	}
	return b, nil
}

// Goal returns the solved board of the given size: tiles in order with
// the blank in the bottom right corner.
func Goal(size int) Board {
	b := Board{size: uint8(size)}
	for i := 0; i < size*size-1; i++ {
		b.tiles[i] = uint8(i + 1)
	}
	return b
}

func (b Board) Size() int {
	return int(b.size)
}

func (b Board) Tile(row, col int) int {
	return int(b.tiles[row*int(b.size)+col])
}

func (b Board) blankIndex() int {
	for i := 0; i < b.cells(); i++ {
		if b.tiles[i] == blank {
			return i
		}
	}
	return -1
}

func (b Board) cells() int {
	return int(b.size) * int(b.size)
}

func (b Board) String() string {
	var sb strings.Builder
	for i := 0; i < b.cells(); i++ {
		if i > 0 {
			if i%int(b.size) == 0 {
				sb.WriteString("|")
			} else {
				sb.WriteString(",")
			}
		}
		if b.tiles[i] == blank {
			sb.WriteString("_")
		} else {
			fmt.Fprintf(&sb, "%d", b.tiles[i])
		}
	}
	return sb.String()
}

// Solvable reports whether the goal can be reached from the board.
func (b Board) Solvable() bool {
	inversions := 0
	n := b.cells()
	for i := 0; i < n; i++ {
		if b.tiles[i] == blank {
			continue
		}
		for j := i + 1; j < n; j++ {
			if b.tiles[j] != blank && b.tiles[j] < b.tiles[i] {
				inversions++
			}
		}
	}
	size := int(b.size)
	if size%2 == 1 {
		return inversions%2 == 0
	}
	rowFromBottom := size - b.blankIndex()/size
	return (inversions+rowFromBottom)%2 == 1
}

// Neighbors returns the boards reachable by sliding one tile into the blank.
func (b Board) Neighbors() []Board {
	size := int(b.size)
	zero := b.blankIndex()
	row, col := zero/size, zero%size

	out := make([]Board, 0, 4)
	for _, d := range [...]struct{ dr, dc int }{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := row+d.dr, col+d.dc
		if r < 0 || r >= size || c < 0 || c >= size {
			continue
		}
		next := b
		idx := r*size + c
		next.tiles[zero], next.tiles[idx] = next.tiles[idx], next.tiles[zero]
		out = append(out, next)
	}
	return out
}

// Puzzle is the sliding-tile search problem. Every move costs 1.
type Puzzle struct {
	size       int
	goal       Board
	initial    Board
	hasInitial bool
	random     *rand.Rand
}

func New(size int, seed int64) (*Puzzle, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("invalid size %d: must be between %d and %d", size, MinSize, MaxSize)
	}
	return &Puzzle{
		size:   size,
		goal:   Goal(size),
		random: rand.New(rand.NewSource(seed)), //nolint:gosec // G404: not security-sensitive.
	}, nil
}

// SetInitialState fails if the board has the wrong size or cannot be solved.
func (p *Puzzle) SetInitialState(b Board) error {
	if b.Size() != p.size {
		return fmt.Errorf("board of size %d does not fit a puzzle of size %d", b.Size(), p.size)
	}
	if !b.Solvable() {
		return fmt.Errorf("board %s is not solvable", b)
	}
	p.initial = b
	p.hasInitial = true
	return nil
}

func (p *Puzzle) InitialState() (Board, bool) {
	return p.initial, p.hasInitial
}

func (p *Puzzle) IsGoal(b Board) bool {
	return b == p.goal
}

func (p *Puzzle) Expand(b Board) []frontier.Successor[Board] {
	neighbors := b.Neighbors()
	out := make([]frontier.Successor[Board], len(neighbors))
	for i, n := range neighbors {
		out[i] = frontier.Successor[Board]{State: n, Cost: 1}
	}
	return out
}

// RandomizeInitialState replaces the initial state with a random solvable board.
func (p *Puzzle) RandomizeInitialState() {
	p.initial = p.RandomState()
	p.hasInitial = true
}

// RandomState returns a uniformly shuffled board, fixed up to be solvable
// by swapping two tiles when the shuffle lands on the wrong parity.
func (p *Puzzle) RandomState() Board {
	b := p.goal
	n := b.cells()
	p.random.Shuffle(n, func(i, j int) { b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i] })
	if !b.Solvable() {
		i, j := 0, 1
		for b.tiles[i] == blank || b.tiles[j] == blank {
			i, j = i+1, j+1
		}
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	}
	return b
}

func (p *Puzzle) DisplayState(w io.Writer, b Board) {
	size := b.Size()
	for r := 0; r < size; r++ {
		cells := make([]string, size)
		for c := 0; c < size; c++ {
			if t := b.Tile(r, c); t == blank {
				cells[c] = " _"
			} else {
				cells[c] = fmt.Sprintf("%2d", t)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
	fmt.Fprintln(w)
}
