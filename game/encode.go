package game

import (
	"fmt"
	"strings"
)

// ROW_SEPARATOR joins the digit rows of an encoded position.
const ROW_SEPARATOR = ","

// Encode writes one digit (0 empty, 1 CampA, 2 CampB) per cell, rows joined
// by ROW_SEPARATOR. This is the persisted snapshot format.
func (p Position) Encode() string {
	var sb strings.Builder
	sb.Grow(p.size * (p.size + 1))
	for row := 0; row < p.size; row++ {
		if row > 0 {
			sb.WriteString(ROW_SEPARATOR)
		}
		for col := 0; col < p.size; col++ {
			sb.WriteByte('0' + byte(p.cells[row][col]))
		}
	}
	return sb.String()
}

// Decode parses the output of Encode.
func Decode(s string) (Position, error) {
	rows := strings.Split(s, ROW_SEPARATOR)
	p, err := NewPosition(len(rows))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %d rows: %w", ErrMalformedPosition, len(rows), err)
	}
	for r, row := range rows {
		if len(row) != p.size {
			return Position{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedPosition, r, len(row), p.size)
		}
		for c := 0; c < len(row); c++ {
			digit := row[c]
			if digit < '0' || digit > '2' {
				return Position{}, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrMalformedPosition, digit, r, c)
			}
			p.cells[r][c] = Camp(digit - '0')
		}
	}
	return p, nil
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.Encode()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	decoded, err := Decode(string(text))
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func (p Position) String() string {
	var sb strings.Builder
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.cells[row][col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
