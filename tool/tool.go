// Package tool exposes kakuyomu.Service operations as named tools taking
// string arguments. It is the text boundary: every call returns text, and
// failures are reported in the text itself.
package tool

import (
	"context"
	"strconv"
	"strings"

	"github.com/fwojciec/kakuyomu"
)

// ErrorPrefix starts the text returned for a failed call.
const ErrorPrefix = "エラーが発生しました: "

// Handler runs a tool against args.
type Handler func(ctx context.Context, args Args) (string, error)

// Tool is a named operation.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry maps tool names to handlers.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry returns a registry holding the standard tools bound to svc.
func NewRegistry(svc kakuyomu.Service) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, t := range standardTools(svc) {
		r.Register(t)
	}
	return r
}

// Register adds t, replacing any tool of the same name.
func (r *Registry) Register(t Tool) {
	if i, ok := r.index[t.Name]; ok {
		r.tools[i] = t
		return
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name)
	}
	return names
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	return append([]Tool(nil), r.tools...)
}

// Invoke runs the named tool. Returns EUNKNOWN if no such tool exists.
func (r *Registry) Invoke(ctx context.Context, name string, args Args) (string, error) {
	i, ok := r.index[name]
	if !ok {
		return "", kakuyomu.Errorf(kakuyomu.EUNKNOWN, "unknown tool %q", name)
	}
	return r.tools[i].Handler(ctx, args)
}

// Call runs the named tool and converts any error into text.
func (r *Registry) Call(ctx context.Context, name string, args Args) string {
	out, err := r.Invoke(ctx, name, args)
	if err != nil {
		return ErrorText(err)
	}
	return out
}

// ErrorText renders err as a tool result.
func ErrorText(err error) string {
	return ErrorPrefix + kakuyomu.ErrorMessage(err)
}

// Info describes the reader and its tools.
func (r *Registry) Info() string {
	var b strings.Builder
	b.WriteString("カクヨム リーダー\n\n")
	b.WriteString("小説投稿サイト「カクヨム」のコンテンツを読み込むためのツールです。\n\n")
	b.WriteString("利用可能なツール:\n")
	for i, t := range r.tools {
		b.WriteString(strconv.Itoa(i+1) + ". " + t.Name + " - " + t.Description + "\n")
	}
	return b.String()
}

// Args holds tool arguments by name. Missing and empty arguments are
// treated alike.
type Args map[string]string

// ParseArgs parses "key=value" pairs.
func ParseArgs(pairs []string) (Args, error) {
	args := make(Args, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, kakuyomu.Errorf(kakuyomu.EINVALID, "invalid argument %q, expected key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}

// Get returns the named argument, or "".
func (a Args) Get(name string) string {
	return a[name]
}

// Required returns the named argument. Returns EINVALID if it is empty.
func (a Args) Required(name string) (string, error) {
	v := a[name]
	if v == "" {
		return "", kakuyomu.Errorf(kakuyomu.EINVALID, "%s required", name)
	}
	return v, nil
}

// Int returns the named integer argument, or def when it is empty.
// Returns EINVALID if the value is not an integer.
func (a Args) Int(name string, def int) (int, error) {
	v := a[name]
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, kakuyomu.Errorf(kakuyomu.EINVALID, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}
