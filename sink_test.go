package scopelog_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AndrewHarrisSPU/scopelog"
	"github.com/AndrewHarrisSPU/scopelog/testlog"
	"golang.org/x/exp/slog"
)

func substringTestLogger(t *testing.T, options ...scopelog.Option) (*scopelog.Logger, func(string)) {
	h, want := testlog.Substrings(t)
	options = append(options, scopelog.Using.Handler(h))

	log := scopelog.New(options...)
	t.Cleanup(func() { log.Close() })

	return log, want
}

type agent struct {
	first, last string
}

func (a agent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("first", a.first),
		slog.String("last", a.last),
	)
}

type badge string

func (b badge) LogValue() slog.Value {
	return slog.StringValue("#" + string(b))
}

func TestSlogSinkScopes(t *testing.T) {
	log, want := substringTestLogger(t)
	ctx := context.Background()

	log.Info(ctx, "bare")
	want(`"msg":"bare"}`)

	ctx, endReq := log.BeginScope(ctx, "request")
	defer endReq()

	log.Info(ctx, "one")
	want(`"msg":"one","scope":["request"]}`)

	ctx2, endAgent := log.BeginScope(ctx, agent{"Fox", "Mulder"})
	ctx3, endUser := log.BeginScope(ctx2, slog.String("user", "fox"))
	ctx4, endBadge := log.BeginScope(ctx3, badge("x"))

	log.Info(ctx4, "all", "n", 1)
	want(`"msg":"all","first":"Fox","last":"Mulder","user":"fox","scope":["request","#x"],"n":1}`)

	endBadge()
	endUser()
	endAgent()
}

func TestSlogSinkReplay(t *testing.T) {
	log, want := substringTestLogger(t)

	ctx, endReq := log.BeginScope(context.Background(), "request")
	defer endReq()

	err := func() error {
		ctx, endUser := log.BeginScope(ctx, slog.String("user", "scully"))
		defer endUser()

		ctx, endQuery := log.BeginScope(ctx, "query")
		defer endQuery()

		return scopelog.Raise(ctx, errors.New("denied"))
	}()

	log.Error(ctx, "failed", err)
	want(`"msg":"failed","user":"scully","scope":["request","query"],"err":"denied"}`)

	log.Error(ctx, "unrelated", errors.New("denied"))
	want(`"msg":"unrelated","scope":["request"],"err":"denied"}`)
}

func TestSlogSinkGroupKV(t *testing.T) {
	log, want := substringTestLogger(t)

	agent := scopelog.Group("agent", scopelog.KV("first", "Dana"), scopelog.KV("last", "Scully"))

	ctx, end := log.BeginScope(context.Background(), agent)
	defer end()

	log.Info(ctx, "grouped", scopelog.KV("n", 2), scopelog.Group("case", scopelog.KV("file", "x")))
	want(`"msg":"grouped","agent":{"first":"Dana","last":"Scully"},"n":2,"case":{"file":"x"}}`)
}

func TestSlogSinkSource(t *testing.T) {
	log, want := substringTestLogger(t)

	log.Warn(context.Background(), "where")
	want(`sink_test.go`)
}

func TestUsing(t *testing.T) {
	var b bytes.Buffer
	want := func(want string) {
		t.Helper()
		if !strings.Contains(b.String(), want) {
			t.Errorf("\n\texpected %s\n\tin %s", want, b.String())
		}
		b.Reset()
	}

	ctx := context.Background()

	// not a terminal: JSON by default
	log := scopelog.New(scopelog.Using.Writer(&b))
	ctx, end := log.BeginScope(ctx, "a")
	log.Info(ctx, "hello")
	want(`"level":"INFO","msg":"hello","scope":["a"]`)
	log.Debug(ctx, "hidden")
	if b.Len() > 0 {
		t.Errorf("debug line at INFO: %s", b.String())
	}
	end()
	log.Close()

	log = scopelog.New(
		scopelog.Using.Text,
		scopelog.Using.Writer(&b),
		scopelog.Using.Level(scopelog.DEBUG),
		scopelog.Using.ScopeKey("ctx"),
	)
	ctx, end = log.BeginScope(context.Background(), "a")
	log.Debug(ctx, "hello")
	want(`level=DEBUG msg=hello ctx=[a]`)
	end()
	log.Close()

	log = scopelog.New(
		scopelog.Using.JSON,
		scopelog.Using.Writer(&b),
		scopelog.Using.Source,
	)
	log.Info(context.Background(), "sourced")
	want(`"source":`)
	log.Close()

	rec := new(testlog.Recorder)
	log = scopelog.New(scopelog.Using.Sink(rec))
	if log.Sink() != scopelog.Sink(rec) {
		t.Errorf("Using.Sink: want %T, got %T", rec, log.Sink())
	}
	log.Close()
}
