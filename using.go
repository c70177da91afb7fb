package scopelog

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/exp/slog"
)

// USING

// Using is an aggregation of [Logger] configuration options.
// Each may be passed to [New]. For example:
//
//	New(Using.JSON, Using.Stderr)
//
// creates a new Logger, using JSON encoding, and writing to standard error.
//
// Elements of Using are either option[T] or optionFunc[T].
// An option[T] is a function that sets a field in an (unexported) configuration struct.
// An optionFunc[T] is a function, taking one argument of type T, and returning an option[T].
//
// With no writer, handler, or sink given, a Logger writes to standard output,
// as text if standard output is a terminal and as JSON otherwise.
var Using struct {
	// slog Handlers
	Text option[slog.TextHandler]
	JSON option[slog.JSONHandler]

	// any slog handler
	Handler optionFunc[slog.Handler]

	// any sink, used as is
	Sink optionFunc[Sink]

	// os pipes
	Stdout option[io.Writer]
	Stderr option[io.Writer]

	// any writer
	Writer optionFunc[io.Writer]

	// reference level
	Level optionFunc[slog.Leveler]

	// using source
	Source option[source]

	// key listing non-Attr scope values
	ScopeKey optionFunc[string]
}

func init() {
	Using.Stdout = usingWriter(os.Stdout)
	Using.Stderr = usingWriter(os.Stderr)
	Using.Writer = usingWriter
	Using.JSON = usingJSON
	Using.Text = usingText
	Using.Handler = usingHandler
	Using.Sink = usingSink
	Using.Level = usingLevel
	Using.Source = usingSource
	Using.ScopeKey = usingScopeKey
}

func usingWriter(w io.Writer) option[io.Writer] {
	return func(cfg *config) {
		cfg.w = w
	}
}

func usingJSON(cfg *config) {
	cfg.h = slog.NewJSONHandler(cfg.w, cfg.handlerOptions())
}

func usingText(cfg *config) {
	cfg.h = slog.NewTextHandler(cfg.w, cfg.handlerOptions())
}

func usingHandler(h slog.Handler) option[slog.Handler] {
	return func(cfg *config) {
		cfg.h = h
	}
}

func usingSink(sink Sink) option[Sink] {
	return func(cfg *config) {
		cfg.sink = sink
	}
}

func usingLevel(ref slog.Leveler) option[slog.Leveler] {
	return func(cfg *config) {
		cfg.ref = ref
	}
}

func usingSource(cfg *config) {
	cfg.addSource = true
}

func usingScopeKey(key string) option[string] {
	return func(cfg *config) {
		cfg.scopeKey = key
	}
}

// OPTION

type (
	// Options may be passed around in other packages,
	// but must be created with package-level Using variables
	Option interface {
		__option__()
	}

	option[T any]     func(*config)
	optionFunc[T any] func(T) option[T]
)

func (option[T]) __option__() {}

// stand-in types
type source struct{}

// CONFIG

type config struct {
	w         io.Writer
	h         slog.Handler
	sink      Sink
	ref       slog.Leveler
	addSource bool
	scopeKey  string
}

func (cfg *config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     cfg.ref,
		AddSource: cfg.addSource,
	}
}

func makeConfig(options ...Option) (cfg config) {
	// These depend on other configurations,
	// so evaluation is delayed
	var oSlog func(*config)
	var oHandler, oSink Option

	// consume options
	for _, o := range options {
		switch o := o.(type) {
		case option[slog.TextHandler]:
			oSlog = o
		case option[slog.JSONHandler]:
			oSlog = o
		case option[slog.Handler]:
			oHandler = o
		case option[Sink]:
			oSink = o
		case option[io.Writer]:
			o(&cfg)
		case option[slog.Leveler]:
			o(&cfg)
		case option[source]:
			o(&cfg)
		case option[string]:
			o(&cfg)
		default:
			panic("unknown option type")
		}
	}

	// a given sink is used as is
	if oSink != nil {
		oSink.(option[Sink])(&cfg)
		return
	}

	if cfg.scopeKey == "" {
		cfg.scopeKey = DefaultScopeKey
	}

	// use a specified Handler
	if oHandler != nil {
		oHandler.(option[slog.Handler])(&cfg)
		cfg.sink = NewSlogSink(cfg.h).WithScopeKey(cfg.scopeKey)
		return
	}

	if cfg.w == nil {
		cfg.w = os.Stdout
	}

	if cfg.ref == nil {
		cfg.ref = INFO
	}

	// otherwise, build a slog Handler
	if oSlog == nil {
		if writerIsTerminal(cfg.w) {
			oSlog = usingText
		} else {
			oSlog = usingJSON
		}
	}
	oSlog(&cfg)

	cfg.sink = NewSlogSink(cfg.h).WithScopeKey(cfg.scopeKey)
	return
}

func writerIsTerminal(w io.Writer) bool {
	file, isFile := w.(*os.File)
	if !isFile {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
