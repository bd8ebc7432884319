package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"linesep/common"
	"linesep/core/config"
	"linesep/core/ml"
	"linesep/core/parser"
	"linesep/core/vector"
)

// StdinName selects standard input in OpenInput.
const StdinName = "-"

// StartupError is a fatal error raised before any vector is processed:
// an unopenable input or a bad header.
type StartupError struct {
	Source string
	Err    error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// Runner reads the dimension and training-count header, trains a separator
// on the training block and classifies every vector after it.
type Runner struct {
	parserOpts parser.Options
	mlOpts     ml.Options
	log        common.Logger
}

func NewRunner(parserOpts parser.Options, mlOpts ml.Options) *Runner {
	return &Runner{
		parserOpts: parserOpts,
		mlOpts:     mlOpts,
		log:        common.GetLogger(common.MODULE_RUNNER),
	}
}

func (r *Runner) Init(c *config.LocalConfig) error {
	logConfig, err := c.LogConfig()
	if err != nil {
		return fmt.Errorf("get log config err: %s", err)
	}
	if err := common.SetLogConfig(logConfig); err != nil {
		return fmt.Errorf("set log config err: %s", err)
	}

	r.parserOpts, err = c.ParserOptions()
	if err != nil {
		return fmt.Errorf("get parser config err: %s", err)
	}
	r.mlOpts, err = c.PerceptronOptions()
	if err != nil {
		return fmt.Errorf("get perceptron config err: %s", err)
	}
	r.log = common.GetLogger(common.MODULE_RUNNER)
	if c.File != "" {
		r.log.Infof("config loaded from %s", c.File)
	}
	return nil
}

// OpenInput opens path for reading, or stdin for "-".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == StdinName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &StartupError{Source: path, Err: errors.Wrap(err, "unable to open input file")}
	}
	return f, nil
}

func (r *Runner) readHeader(p *parser.Parser) (int, int, error) {
	dimension, err := p.ReadHeader()
	if err != nil {
		return 0, 0, &StartupError{Source: "header", Err: errors.Wrap(err, "dimension")}
	}
	if err := vector.CheckDimension(dimension, r.parserOpts.MaxDimension); err != nil {
		return 0, 0, &StartupError{Source: "header", Err: err}
	}
	count, err := p.ReadHeader()
	if err != nil {
		return 0, 0, &StartupError{Source: "header", Err: errors.Wrap(err, "training count")}
	}
	if count < 0 {
		return 0, 0, &StartupError{Source: "header", Err: errors.Errorf("negative training count %d", count)}
	}
	r.log.Debugf("dimension %d, %d training vectors", dimension, count)
	return dimension, count, nil
}

func (r *Runner) train(p *parser.Parser) (*ml.Separator, ml.Stats, error) {
	dimension, count, err := r.readHeader(p)
	if err != nil {
		return nil, ml.Stats{}, err
	}
	trainer, err := ml.NewTrainer(dimension, r.mlOpts, common.GetLogger(common.MODULE_TRAINER))
	if err != nil {
		return nil, ml.Stats{}, err
	}
	return trainer.Train(p, count)
}

func (r *Runner) newParser(in io.Reader) *parser.Parser {
	return parser.NewParser(in, r.parserOpts, common.GetLogger(common.MODULE_PARSER))
}

// Separate reads the header and the training block only.
func (r *Runner) Separate(in io.Reader) (*ml.Separator, ml.Stats, error) {
	return r.train(r.newParser(in))
}

// Run writes one label line per vector after the training block, in input order.
func (r *Runner) Run(in io.Reader, out io.Writer) error {
	p := r.newParser(in)
	sep, stats, err := r.train(p)
	if err != nil {
		return err
	}

	classifier, err := ml.NewClassifier(sep, r.mlOpts, common.GetLogger(common.MODULE_CLASSIFIER))
	if err != nil {
		return err
	}
	w := newLabelWriter(out)
	n, err := classifier.Run(p, w)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return err
	}
	r.log.Infof("trained on %d (%d updates), classified %d", stats.Seen, stats.Updates, n)
	return nil
}

type labelWriter struct {
	w *bufio.Writer
}

func newLabelWriter(out io.Writer) *labelWriter {
	return &labelWriter{w: bufio.NewWriter(out)}
}

func (lw *labelWriter) Emit(l vector.Label) error {
	_, err := fmt.Fprintf(lw.w, "%d\n", l)
	return err
}

func (lw *labelWriter) Flush() error {
	return errors.Wrap(lw.w.Flush(), "flush labels")
}
