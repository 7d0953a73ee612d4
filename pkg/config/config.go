// Package config reads fractal descriptions from op-files.
//
// An op-file is a whitespace-separated list of tokens:
//
//	<type>
//	<center re> <center im> <width> <columns> <rows> <max iterations> <name> <supersampling>
//
// followed by the fields of the type. Mandel and Burning types continue with
//
//	<exponent re> <exponent im> <seed re> <seed im> <#background> <color function>
//
// where a color function is one of
//
//	Default <palette> <band size>
//	Smooth <count> <p> (<#color> <band size>){count}
//	Discrete <count> (<#color> <band size>){count}
//
// Buddha types continue with
//
//	<exponent re> <exponent im> <seed re> <seed im> <three channel 0|1>
//	[<red limit> <green limit> <blue limit>] <hits per pixel>
//	(<threshold> | PerChannel)    when three channel is 1
//	Default <palette>            otherwise
//
// and Newton_Fractal continues with
//
//	<count> (<root re> <root im> <#color>){count} <radius²> <weight> <#background>
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/willbeason/fractal-render/pkg/colors"
	"github.com/willbeason/fractal-render/pkg/fractal"
	"github.com/willbeason/fractal-render/pkg/raster"
)

// ErrSyntax is wrapped by every error caused by a malformed op-file.
var ErrSyntax = errors.New("op-file syntax error")

// Load reads the op-file at path.
func Load(path string) (*fractal.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Read parses one op-file. The returned Params are not validated; fractal.New does that.
func Read(r io.Reader) (*fractal.Params, error) {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	tr := &tokens{s: s}

	p, err := readParams(tr)
	if err != nil {
		return nil, err
	}
	if tr.more() {
		return nil, tr.errorf("unexpected trailing token %q", tr.s.Text())
	}
	return p, nil
}

func readParams(tr *tokens) (*fractal.Params, error) {
	name, err := tr.next()
	if err != nil {
		return nil, err
	}
	kind, err := fractal.ParseKind(name)
	if err != nil {
		return nil, err
	}

	p := &fractal.Params{Kind: kind}
	if err := readGeometry(tr, p); err != nil {
		return nil, err
	}

	switch {
	case kind == fractal.Newton:
		err = readNewton(tr, p)
	case kind.Histogram():
		err = readBuddha(tr, p)
	default:
		err = readPower(tr, p)
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func readGeometry(tr *tokens, p *fractal.Params) error {
	var err error
	if p.Center, err = tr.point(); err != nil {
		return err
	}
	if p.Width, err = tr.number(); err != nil {
		return err
	}
	if p.Columns, err = tr.integer(); err != nil {
		return err
	}
	if p.Rows, err = tr.integer(); err != nil {
		return err
	}
	if p.MaxIterations, err = tr.integer(); err != nil {
		return err
	}
	if p.Name, err = tr.next(); err != nil {
		return err
	}
	if p.Supersample, err = tr.integer(); err != nil {
		return err
	}
	return nil
}

func readPowerMap(tr *tokens, p *fractal.Params) error {
	var err error
	if p.Exponent, err = tr.point(); err != nil {
		return err
	}
	if p.Seed, err = tr.point(); err != nil {
		return err
	}
	return nil
}

func readPower(tr *tokens, p *fractal.Params) error {
	if err := readPowerMap(tr, p); err != nil {
		return err
	}

	var err error
	if p.Background, err = tr.color(); err != nil {
		return err
	}
	if p.Color, err = readColorFunc(tr); err != nil {
		return err
	}
	return nil
}

func readBuddha(tr *tokens, p *fractal.Params) error {
	if err := readPowerMap(tr, p); err != nil {
		return err
	}

	threeChannel, err := tr.flag()
	if err != nil {
		return err
	}

	if threeChannel {
		for i := range p.Thresholds {
			if p.Thresholds[i], err = tr.integer(); err != nil {
				return err
			}
		}
	} else {
		p.Thresholds = [3]int{p.MaxIterations, p.MaxIterations, p.MaxIterations}
	}

	if p.HitsPerPixel, err = tr.integer(); err != nil {
		return err
	}

	if !threeChannel {
		p.Normalize, err = readNormalizer(tr)
		return err
	}

	word, err := tr.next()
	if err != nil {
		return err
	}
	if word == "PerChannel" {
		p.Normalize = colors.PerChannelMax
		return nil
	}

	threshold, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return tr.errorf("threshold %q: %v", word, err)
	}
	if threshold < 0 || threshold >= 1 {
		return tr.errorf("threshold %g outside [0, 1)", threshold)
	}
	p.Normalize = colors.ThresholdMax(threshold)
	return nil
}

func readNewton(tr *tokens, p *fractal.Params) error {
	n, err := tr.integer()
	if err != nil {
		return err
	}
	if n < 0 {
		return tr.errorf("negative root count %d", n)
	}

	p.Roots = make([]fractal.Root, n)
	for i := range p.Roots {
		if p.Roots[i].Point, err = tr.point(); err != nil {
			return err
		}
		if p.Roots[i].Color, err = tr.color(); err != nil {
			return err
		}
	}

	if p.RadiusSq, err = tr.number(); err != nil {
		return err
	}
	if p.Weight, err = tr.number(); err != nil {
		return err
	}
	if p.Background, err = tr.color(); err != nil {
		return err
	}
	return nil
}

func readColorFunc(tr *tokens) (colors.Func, error) {
	kind, err := tr.next()
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Default":
		palette, err := tr.integer()
		if err != nil {
			return nil, err
		}
		size, err := tr.integer()
		if err != nil {
			return nil, err
		}
		f, err := colors.DefaultFunc(palette, size)
		if err != nil {
			return nil, tr.errorf("%v", err)
		}
		return f, nil

	case "Smooth":
		n, err := tr.integer()
		if err != nil {
			return nil, err
		}
		power, err := tr.number()
		if err != nil {
			return nil, err
		}
		if !(power > 1) {
			return nil, tr.errorf("smoothing power %g must exceed 1", power)
		}
		stops, err := readStops(tr, n)
		if err != nil {
			return nil, err
		}
		return colors.Smooth(colors.Table(stops), power), nil

	case "Discrete":
		n, err := tr.integer()
		if err != nil {
			return nil, err
		}
		stops, err := readStops(tr, n)
		if err != nil {
			return nil, err
		}
		return colors.Discrete(colors.Table(stops)), nil

	default:
		return nil, tr.errorf("unknown color function %q", kind)
	}
}

func readStops(tr *tokens, n int) ([]colors.Stop, error) {
	if n < 1 {
		return nil, tr.errorf("gradient needs at least one color, got %d", n)
	}

	stops := make([]colors.Stop, n)
	total := 0
	for i := range stops {
		var err error
		if stops[i].Color, err = tr.color(); err != nil {
			return nil, err
		}
		if stops[i].Length, err = tr.integer(); err != nil {
			return nil, err
		}
		if stops[i].Length < 0 {
			return nil, tr.errorf("negative band size %d", stops[i].Length)
		}
		total += stops[i].Length
	}

	if total == 0 {
		return nil, tr.errorf("gradient has no entries")
	}
	return stops, nil
}

func readNormalizer(tr *tokens) (colors.Normalizer, error) {
	kind, err := tr.next()
	if err != nil {
		return nil, err
	}
	if kind != "Default" {
		return nil, tr.errorf("unknown color converter %q", kind)
	}

	palette, err := tr.integer()
	if err != nil {
		return nil, err
	}
	n, err := colors.DefaultNormalizer(palette)
	if err != nil {
		return nil, tr.errorf("%v", err)
	}
	return n, nil
}

// tokens reads whitespace-separated tokens and remembers how many it has consumed, so errors
// can point at the offending token.
type tokens struct {
	s *bufio.Scanner
	n int
}

func (t *tokens) more() bool {
	return t.s.Scan()
}

func (t *tokens) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: token %d: %s", ErrSyntax, t.n, fmt.Sprintf(format, args...))
}

func (t *tokens) next() (string, error) {
	if !t.s.Scan() {
		if err := t.s.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of file after token %d", ErrSyntax, t.n)
	}
	t.n++
	return t.s.Text(), nil
}

func (t *tokens) integer() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, t.errorf("integer %q: %v", s, err)
	}
	return v, nil
}

func (t *tokens) flag() (bool, error) {
	v, err := t.integer()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (t *tokens) number() (float64, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.errorf("number %q: %v", s, err)
	}
	return v, nil
}

func (t *tokens) point() (complex128, error) {
	re, err := t.number()
	if err != nil {
		return 0, err
	}
	im, err := t.number()
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

// color parses a #rrggbb color.
func (t *tokens) color() (raster.RGB, error) {
	s, err := t.next()
	if err != nil {
		return raster.RGB{}, err
	}
	c, err := ParseColor(s)
	if err != nil {
		return raster.RGB{}, t.errorf("%v", err)
	}
	return c, nil
}

// ParseColor parses a #rrggbb hex color, in either case.
func ParseColor(s string) (raster.RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return raster.RGB{}, fmt.Errorf("color %q is not of the form #rrggbb", s)
	}

	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return raster.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}

	return raster.RGB{int64(v >> 16 & 0xff), int64(v >> 8 & 0xff), int64(v & 0xff)}, nil
}
