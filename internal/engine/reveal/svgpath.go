package reveal

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/gg"
)

var (
	// ErrEmptyPath is returned for path data without any drawing command.
	ErrEmptyPath = errors.New("reveal: empty path data")
	// ErrUnsupportedCommand is returned for elliptical arcs.
	ErrUnsupportedCommand = errors.New("reveal: unsupported path command")
)

// ParsePathData converts SVG path data into a gg path. Absolute and relative
// M, L, H, V, C, S, Q, T and Z commands are understood.
func ParsePathData(d string) (*gg.Path, error) {
	s := &scanner{src: d}
	p := gg.NewPath()

	var (
		cmd         byte
		cur, start  gg.Point
		lastCtrl    gg.Point
		lastCmd     byte
		drawn       bool
		haveSubpath bool
	)

	for {
		s.skipSeparators()
		if s.done() {
			break
		}
		if c := s.peek(); isCommand(c) {
			cmd = c
			s.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data: expected command at offset %d", s.pos)
		}

		rel := cmd >= 'a'
		base := func(pt gg.Point) gg.Point {
			if rel {
				return gg.Point{X: cur.X + pt.X, Y: cur.Y + pt.Y}
			}
			return pt
		}

		switch cmd {
		case 'M', 'm':
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			cur = base(pt)
			start = cur
			p.MoveTo(cur.X, cur.Y)
			haveSubpath = true
			// Further coordinate pairs are implicit line-tos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
			lastCmd = 'M'
			continue

		case 'Z', 'z':
			if haveSubpath {
				p.Close()
				drawn = true
			}
			cur = start
			lastCmd = 'Z'
			cmd = 0
			continue
		}

		if !haveSubpath {
			p.MoveTo(cur.X, cur.Y)
			start = cur
			haveSubpath = true
		}

		switch cmd {
		case 'L', 'l':
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			cur = base(pt)
			p.LineTo(cur.X, cur.Y)

		case 'H', 'h':
			x, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			cur.X = x
			p.LineTo(cur.X, cur.Y)

		case 'V', 'v':
			y, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			cur.Y = y
			p.LineTo(cur.X, cur.Y)

		case 'C', 'c':
			pts, err := s.points(3)
			if err != nil {
				return nil, err
			}
			c1, c2, end := base(pts[0]), base(pts[1]), base(pts[2])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl, cur = c2, end

		case 'S', 's':
			pts, err := s.points(2)
			if err != nil {
				return nil, err
			}
			c1 := cur
			if lastCmd == 'C' || lastCmd == 'S' {
				c1 = mirror(lastCtrl, cur)
			}
			c2, end := base(pts[0]), base(pts[1])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl, cur = c2, end

		case 'Q', 'q':
			pts, err := s.points(2)
			if err != nil {
				return nil, err
			}
			c, end := base(pts[0]), base(pts[1])
			p.QuadraticTo(c.X, c.Y, end.X, end.Y)
			lastCtrl, cur = c, end

		case 'T', 't':
			pt, err := s.point()
			if err != nil {
				return nil, err
			}
			c := cur
			if lastCmd == 'Q' || lastCmd == 'T' {
				c = mirror(lastCtrl, cur)
			}
			end := base(pt)
			p.QuadraticTo(c.X, c.Y, end.X, end.Y)
			lastCtrl, cur = c, end

		case 'A', 'a':
			return nil, fmt.Errorf("%w: %c", ErrUnsupportedCommand, cmd)

		default:
			return nil, fmt.Errorf("%w: %c", ErrUnsupportedCommand, cmd)
		}
		drawn = true
		lastCmd = upper(cmd)
	}

	if !drawn {
		return nil, ErrEmptyPath
	}
	return p, nil
}

func mirror(ctrl, about gg.Point) gg.Point {
	return gg.Point{X: 2*about.X - ctrl.X, Y: 2*about.Y - ctrl.Y}
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isCommand(c byte) bool {
	switch upper(c) {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) skipSeparators() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

// number reads one number. Signs and a second decimal point start a new
// number, so "1-2" and "0.5.5" are two numbers each.
func (s *scanner) number() (float64, error) {
	s.skipSeparators()
	begin := s.pos
	if !s.done() && (s.peek() == '+' || s.peek() == '-') {
		s.pos++
	}
	digits, dot := false, false
	for !s.done() {
		c := s.peek()
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' && !dot:
			dot = true
		case (c == 'e' || c == 'E') && digits:
			s.pos++
			if !s.done() && (s.peek() == '+' || s.peek() == '-') {
				s.pos++
			}
			for !s.done() && s.peek() >= '0' && s.peek() <= '9' {
				s.pos++
			}
			return s.parse(begin)
		default:
			if !digits {
				return 0, fmt.Errorf("path data: expected number at offset %d", begin)
			}
			return s.parse(begin)
		}
		s.pos++
	}
	if !digits {
		return 0, fmt.Errorf("path data: expected number at offset %d", begin)
	}
	return s.parse(begin)
}

func (s *scanner) parse(begin int) (float64, error) {
	v, err := strconv.ParseFloat(s.src[begin:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("path data: %w", err)
	}
	return v, nil
}

func (s *scanner) point() (gg.Point, error) {
	x, err := s.number()
	if err != nil {
		return gg.Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return gg.Point{}, err
	}
	return gg.Point{X: x, Y: y}, nil
}

func (s *scanner) points(n int) ([]gg.Point, error) {
	pts := make([]gg.Point, n)
	for i := range pts {
		pt, err := s.point()
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}
