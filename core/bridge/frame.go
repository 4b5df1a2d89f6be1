package bridge

import (
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/pipebridge/core/env"
	"github.com/dmitrymomot/pipebridge/core/handler"
	"github.com/dmitrymomot/pipebridge/core/logger"
)

// frameKey binds a typed context to the environment it was entered from for
// the duration of one typed sub-chain call. It is never copied back.
const frameKey = "pipebridge.bridge.frame"

// frame tracks one crossing from a dictionary pipeline into a typed sub-chain.
type frame struct {
	env    env.Environment
	ctx    handler.Context
	live   bool
	seeded map[string]struct{}
	log    *slog.Logger
}

func newFrame(e env.Environment, ctx handler.Context, log *slog.Logger) *frame {
	return &frame{
		env:    e,
		ctx:    ctx,
		live:   isLive(e, ctx),
		seeded: make(map[string]struct{}),
		log:    log,
	}
}

// isLive reports whether e already projects ctx, in which case both views
// share storage and there is nothing to synchronize.
func isLive(e env.Environment, ctx handler.Context) bool {
	p, ok := e.(*env.Projection)
	if !ok {
		return false
	}
	return sameContext(p.Context(), ctx)
}

func sameContext(a, b handler.Context) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}

// attach binds the frame to its context and returns the function restoring
// the previous binding, which supports re-entering the same bridge.
func (f *frame) attach() func() {
	items := f.ctx.Items()
	prev, hadPrev := items.Get(frameKey)
	items.Set(frameKey, f)
	return func() {
		if hadPrev {
			items.Set(frameKey, prev)
			return
		}
		items.Delete(frameKey)
	}
}

func frameOf(ctx handler.Context) (*frame, bool) {
	v, ok := ctx.Items().Get(frameKey)
	if !ok {
		return nil, false
	}
	f, ok := v.(*frame)
	return f, ok
}

// pull copies environment state into the context: extension entries and the
// status code. Entries pulled earlier that disappeared from the environment
// are removed from the context.
func (f *frame) pull() {
	if f.live {
		return
	}
	items := f.ctx.Items()
	current := make(map[string]struct{}, f.env.Len())
	for k, v := range f.env.All() {
		if skipKey(k) {
			continue
		}
		items.Set(k, v)
		current[k] = struct{}{}
	}
	for k := range f.seeded {
		if _, ok := current[k]; !ok {
			items.Delete(k)
		}
	}
	f.seeded = current

	if code, ok := env.Status(f.env); ok && code != f.ctx.Status() {
		f.ctx.SetStatus(code)
	}
}

// push copies context mutations that are not live through the environment:
// extension entries, deletions of previously pulled entries, and the status code.
func (f *frame) push() {
	if f.live {
		return
	}
	items := f.ctx.Items()
	for k, v := range items {
		if skipKey(k) {
			continue
		}
		if err := f.env.Set(k, v); err != nil {
			f.warn("copy back failed", k, err)
		}
	}
	for k := range f.seeded {
		if _, ok := items[k]; !ok {
			if err := f.env.Delete(k); err != nil {
				f.warn("delete back failed", k, err)
			}
		}
	}
	f.seeded = make(map[string]struct{}, len(items))
	for k := range items {
		if !skipKey(k) {
			f.seeded[k] = struct{}{}
		}
	}

	if code, ok := env.Status(f.env); !ok || code != f.ctx.Status() {
		if err := f.env.Set(env.KeyResponseStatusCode, f.ctx.Status()); err != nil {
			f.warn("status copy back failed", env.KeyResponseStatusCode, err)
		}
	}
}

func (f *frame) warn(msg, key string, err error) {
	f.log.Warn(msg,
		logger.Component("bridge"),
		logger.EnvKey(key),
		logger.Error(err),
	)
}

func skipKey(k string) bool {
	return k == frameKey || env.IsReserved(k)
}
