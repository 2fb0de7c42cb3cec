package extract

// An Option configures a Navigator, an Extractor or Extract.
type Option func(*options)

type options struct {
	targetKey string
	observer  Observer
	filter    Filter
	color     bool
}

func newOptions(opts []Option) *options {
	o := &options{
		targetKey: DefaultTargetKey,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTargetKey sets the root key of the collection to extract.  An empty
// key leaves the default.
func WithTargetKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.targetKey = key
		}
	}
}

// WithObserver sets an Observer notified of the progress of the extraction.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithFilter makes the Extractor drop records f does not match.
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithColor makes the Extractor highlight records with ANSI color codes.
func WithColor(color bool) Option {
	return func(o *options) {
		o.color = color
	}
}
