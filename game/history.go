package game

import "fmt"

// History is the list of positions after every completed ply, starting
// with the initial position.
type History struct {
	positions []Position
}

func NewHistory(initial Position) *History {
	return &History{positions: []Position{initial}}
}

func (h *History) push(p Position) {
	h.positions = append(h.positions, p)
}

// pop drops the last ply and returns the position before it.
func (h *History) pop() Position {
	h.positions = h.positions[:len(h.positions)-1]
	return h.positions[len(h.positions)-1]
}

// Plies is the number of completed turns.
func (h *History) Plies() int {
	return len(h.positions) - 1
}

// At returns the position after ply i (0 is the initial position).
func (h *History) At(i int) (Position, error) {
	if i < 0 || i >= len(h.positions) {
		return Position{}, fmt.Errorf("ply %d out of range 0..%d", i, h.Plies())
	}
	return h.positions[i], nil
}

func (h *History) Last() Position {
	return h.positions[len(h.positions)-1]
}

// Positions returns a copy of every snapshot.
func (h *History) Positions() []Position {
	out := make([]Position, len(h.positions))
	copy(out, h.positions)
	return out
}

// Encode serializes every snapshot for persistence.
func (h *History) Encode() []string {
	out := make([]string, len(h.positions))
	for i, p := range h.positions {
		out[i] = p.Encode()
	}
	return out
}

// DecodeHistory rebuilds a history from encoded snapshots.
func DecodeHistory(encoded []string) (*History, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: empty history", ErrMalformedPosition)
	}
	h := &History{positions: make([]Position, 0, len(encoded))}
	for i, s := range encoded {
		p, err := Decode(s)
		if err != nil {
			return nil, fmt.Errorf("ply %d: %w", i, err)
		}
		if i > 0 && p.size != h.positions[0].size {
			return nil, fmt.Errorf("%w: ply %d is %dx%d, game is %dx%d", ErrMalformedPosition, i, p.size, p.size, h.positions[0].size, h.positions[0].size)
		}
		h.positions = append(h.positions, p)
	}
	return h, nil
}

// Replay is a cursor for stepping through a history.
type Replay struct {
	history *History
	ply     int
}

func NewReplay(h *History) *Replay {
	return &Replay{history: h, ply: h.Plies()}
}

// clamp keeps the cursor valid after the history was undone under it.
func (r *Replay) clamp() {
	if r.ply > r.history.Plies() {
		r.ply = r.history.Plies()
	}
}

func (r *Replay) Ply() int {
	r.clamp()
	return r.ply
}

func (r *Replay) Position() Position {
	r.clamp()
	return r.history.positions[r.ply]
}

// ToMove is the camp whose turn it is at the cursor.
func (r *Replay) ToMove() Camp {
	if r.Ply()%2 == 0 {
		return CampA
	}
	return CampB
}

func (r *Replay) AtStart() bool { return r.Ply() == 0 }
func (r *Replay) AtEnd() bool   { return r.Ply() == r.history.Plies() }

func (r *Replay) Beginning() { r.ply = 0 }
func (r *Replay) End()       { r.ply = r.history.Plies() }

func (r *Replay) Prev() {
	r.clamp()
	if r.ply > 0 {
		r.ply--
	}
}

func (r *Replay) Next() {
	if r.ply < r.history.Plies() {
		r.ply++
	}
}
