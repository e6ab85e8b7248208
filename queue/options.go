package queue

import (
	"bytes"
	"fmt"
	"io"
	"time"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultItemCount = 1
	DefaultEvery     = 30 * time.Second
	DefaultTime      = 5 * time.Second
)

// Options controls how a TimedQueue drains.
type Options struct {
	// Name labels the queue in logs, spans and metrics. Defaults to the queue id.
	Name string

	// ItemCount is how many items each tick removes. Values below 1 are treated as 1.
	ItemCount int

	// Every is the delay between Start and the first tick.
	Every time.Duration

	// Time is the delay between two ticks.
	Time time.Duration
}

// DefaultOptions returns one item per tick, a 30s initial delay and 5s between ticks.
func DefaultOptions() Options {
	return Options{
		ItemCount: DefaultItemCount,
		Every:     DefaultEvery,
		Time:      DefaultTime,
	}
}

func (o Options) normalized() Options {
	if o.ItemCount < 1 {
		o.ItemCount = DefaultItemCount
	}

	o.Every = max(o.Every, 0)
	o.Time = max(o.Time, 0)

	return o
}

// Option is a functional option for NewTimed.
type Option func(*Options)

func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

func WithItemCount(count int) Option {
	return func(o *Options) { o.ItemCount = count }
}

func WithEvery(every time.Duration) Option {
	return func(o *Options) { o.Every = every }
}

func WithTime(between time.Duration) Option {
	return func(o *Options) { o.Time = between }
}

// WithOptions replaces every option at once, typically with the result of LoadOptions.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// Duration decodes from YAML either as an integer number of milliseconds or as
// a Go duration string ("1.5s", "250ms").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: duration must be a scalar", errors2.ErrInvalidOptions, node.Line)
	}

	var millis int64
	if err := node.Decode(&millis); err == nil {
		*d = Duration(time.Duration(millis) * time.Millisecond)

		return nil
	}

	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: %w", errors2.ErrInvalidOptions, node.Line, err)
	}

	*d = Duration(parsed)

	return nil
}

type optionsDocument struct {
	Name      *string   `yaml:"name"`
	ItemCount *int      `yaml:"itemCount"`
	Every     *Duration `yaml:"every"`
	Time      *Duration `yaml:"time"`
}

// LoadOptions reads a YAML options document. Keys that are absent keep their default.
//
// Example:
//
//	itemCount: 10
//	every: 0
//	time: 250ms
func LoadOptions(r io.Reader) (Options, error) {
	var doc optionsDocument

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&doc); err != nil && err != io.EOF { //nolint:errorlint
		return Options{}, fmt.Errorf("%w: %w", errors2.ErrInvalidOptions, err)
	}

	opts := DefaultOptions()

	if doc.Name != nil {
		opts.Name = *doc.Name
	}

	if doc.ItemCount != nil {
		opts.ItemCount = *doc.ItemCount
	}

	if doc.Every != nil {
		opts.Every = time.Duration(*doc.Every)
	}

	if doc.Time != nil {
		opts.Time = time.Duration(*doc.Time)
	}

	return opts.normalized(), nil
}

// ParseOptions is LoadOptions over a byte slice.
func ParseOptions(data []byte) (Options, error) {
	return LoadOptions(bytes.NewReader(data))
}
