package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"linesep/common"
	"linesep/core/vector"
)

const COMMA = ","

// ErrNoRecord reports that the input has no more lines.
// It ends a stream and is not a failure.
var ErrNoRecord = errors.New("no more records")

// ParseError describes a token that could not be read as a number.
type ParseError struct {
	Line  int
	Field int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("line %d: invalid token %q: %s", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("line %d field %d: invalid token %q: %s", e.Line, e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errMissingField = errors.New("missing field")
	errBadLabel     = errors.New("label must be 1 or -1")
)

type Options struct {
	// Strict turns malformed tokens into ParseErrors instead of reading them as 0.
	Strict bool

	// MaxDimension bounds the dimension of parsed vectors.
	MaxDimension int
}

func DefaultOptions() Options {
	return Options{MaxDimension: vector.DefaultMaxDimension}
}

// Parser reads records one line at a time.
type Parser struct {
	scanner *bufio.Scanner
	opts    Options
	log     common.Logger
	line    int
}

func NewParser(r io.Reader, opts Options, log common.Logger) *Parser {
	if opts.MaxDimension == 0 {
		opts.MaxDimension = vector.DefaultMaxDimension
	}
	return &Parser{
		scanner: bufio.NewScanner(r),
		opts:    opts,
		log:     log,
	}
}

// Line returns the number of lines consumed so far.
func (p *Parser) Line() int {
	return p.line
}

func (p *Parser) nextLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", errors.Wrapf(err, "read line %d", p.line+1)
		}
		return "", ErrNoRecord
	}
	p.line++
	return p.scanner.Text(), nil
}

// ReadHeader reads the next line as a single integer.
// A malformed header is always an error.
func (p *Parser) ReadHeader() (int, error) {
	text, err := p.nextLine()
	if err != nil {
		return 0, err
	}
	token := strings.TrimSpace(text)
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Line: p.line, Field: -1, Token: token, Err: unwrapNum(err)}
	}
	return n, nil
}

// Next parses the next line into a vector of the given dimension.
// It returns ErrNoRecord at end of input.
func (p *Parser) Next(dimension int) (*vector.Vector, error) {
	v, err := vector.New(dimension, p.opts.MaxDimension)
	if err != nil {
		return nil, err
	}
	if err := p.NextInto(v); err != nil {
		return nil, err
	}
	return v, nil
}

// NextInto parses the next line into v, overwriting its coordinates and label.
func (p *Parser) NextInto(v *vector.Vector) error {
	text, err := p.nextLine()
	if err != nil {
		return err
	}
	return p.parseRecord(text, v)
}

func (p *Parser) parseRecord(text string, v *vector.Vector) error {
	v.Reset()
	fields := strings.Split(text, COMMA)

	for i := 0; i < v.Dim(); i++ {
		if i >= len(fields) {
			if err := p.tolerate(i, "", errMissingField); err != nil {
				return err
			}
			continue
		}
		token := strings.TrimSpace(fields[i])
		x, err := strconv.ParseFloat(token, 64)
		if err != nil {
			if err := p.tolerate(i, token, unwrapNum(err)); err != nil {
				return err
			}
			continue
		}
		v.Set(i, x)
	}

	if len(fields) <= v.Dim() {
		return nil
	}
	token := strings.TrimSpace(fields[v.Dim()])
	label, err := parseLabel(token)
	if err != nil {
		return p.tolerate(v.Dim(), token, err)
	}
	v.Label = label
	return nil
}

// tolerate returns a ParseError in strict mode and logs it otherwise.
func (p *Parser) tolerate(field int, token string, cause error) error {
	perr := &ParseError{Line: p.line, Field: field, Token: token, Err: cause}
	if p.opts.Strict {
		return perr
	}
	if p.log != nil {
		p.log.Warnf("%s, using zero value", perr)
	}
	return nil
}

// parseLabel reads the trailing field as a real number truncated toward zero.
func parseLabel(token string) (vector.Label, error) {
	x, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return vector.Unset, unwrapNum(err)
	}
	if math.IsNaN(x) || math.Abs(x) >= 2 {
		return vector.Unset, errBadLabel
	}
	l := vector.Label(math.Trunc(x))
	if !l.Valid() {
		return vector.Unset, errBadLabel
	}
	return l, nil
}

func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
