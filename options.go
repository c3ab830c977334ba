package notetex

// Option configures a Parser or a conversion.
type Option func(*config)

type config struct {
	title         string
	author        string
	date          string
	documentClass string
	packages      []string
	wrapWidth     int
	warn          func(error)
}

const (
	defaultTitle         = "Notes"
	defaultAuthor        = "Cayden Lund"
	defaultDate          = ""
	defaultDocumentClass = "article"
)

func defaultConfig() config {
	return config{
		title:         defaultTitle,
		author:        defaultAuthor,
		date:          defaultDate,
		documentClass: defaultDocumentClass,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithTitle sets the title used when the document head does not set one.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// WithAuthor sets the default author.
func WithAuthor(author string) Option {
	return func(cfg *config) {
		cfg.author = author
	}
}

// WithDate sets the default date. An empty date suppresses it.
func WithDate(date string) Option {
	return func(cfg *config) {
		cfg.date = date
	}
}

// WithDocumentClass sets the default \documentclass.
func WithDocumentClass(class string) Option {
	return func(cfg *config) {
		if class != "" {
			cfg.documentClass = class
		}
	}
}

// WithPackages adds packages loaded ahead of any the head declares.
func WithPackages(packages ...string) Option {
	return func(cfg *config) {
		cfg.packages = append(cfg.packages, packages...)
	}
}

// WithWrapWidth word-wraps body lines outside verbatim blocks to width
// columns. Zero disables wrapping.
func WithWrapWidth(width int) Option {
	return func(cfg *config) {
		if width < 0 {
			width = 0
		}
		cfg.wrapWidth = width
	}
}

// WithWarningHandler receives non-fatal conditions such as blocks left open
// at end of input.
func WithWarningHandler(fn func(error)) Option {
	return func(cfg *config) {
		cfg.warn = fn
	}
}
