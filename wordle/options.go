package wordle

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
)

// Progress receives one Add per finished unit of work, a table row or a
// ranked guess. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }

type options struct {
	workers  int
	progress Progress
	logger   *log.Logger
}

// Option tunes BuildPairTable and Scorer.Rank.
type Option func(*options)

// WithWorkers bounds the number of goroutines, n <= 0 means runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func WithProgress(p Progress) Option {
	return func(o *options) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithLogger receives debug lines about finished builds and rankings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{progress: noProgress{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}
