package host

import (
	"context"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/subcover/internal/settings"
)

// Renderer redraws the overlay from a settings snapshot.
type Renderer interface {
	Window() xproto.Window
	Render(s settings.Settings) error
}

// Loop owns the X event loop goroutine. X event handlers, queued calls and
// re-renders triggered by settings changes all run on it, one at a time.
type Loop struct {
	xu       *xgbutil.XUtil
	renderer Renderer
	store    *settings.Store
	logger   *slog.Logger

	dirty chan struct{}
	calls chan func()
}

// NewLoop creates the loop and subscribes it to store changes.
func NewLoop(xu *xgbutil.XUtil, renderer Renderer, store *settings.Store, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		xu:       xu,
		renderer: renderer,
		store:    store,
		logger:   logger,
		dirty:    make(chan struct{}, 1),
		calls:    make(chan func()),
	}
	store.Subscribe(func(settings.Settings) { l.markDirty() })
	return l
}

func (l *Loop) String() string {
	return "overlay-loop"
}

// markDirty schedules a re-render without blocking the writer.
func (l *Loop) markDirty() {
	select {
	case l.dirty <- struct{}{}:
	default:
	}
}

// Do runs fn on the loop goroutine and waits for it to finish. It returns
// ctx.Err() if the loop does not pick fn up before ctx is done.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	call := func() {
		defer close(done)
		fn()
	}
	select {
	case l.calls <- call:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Serve runs the event loop until ctx is cancelled.
func (l *Loop) Serve(ctx context.Context) error {
	pingBefore, pingAfter, pingQuit := xevent.MainPing(l.xu)
	stopping := ctx.Done()

	for {
		select {
		case <-pingBefore:
			// An X event handler is running; wait for it.
			<-pingAfter
		case <-l.dirty:
			if err := l.renderer.Render(l.store.Snapshot()); err != nil {
				l.logger.Warn("overlay render failed", "error", err)
			}
		case fn := <-l.calls:
			fn()
		case <-stopping:
			stopping = nil
			xevent.Quit(l.xu)
			l.wake()
		case <-pingQuit:
			// Only the Quit above stops the xevent loop. A lost X connection
			// never gets here: xgbutil exits the process from its reader.
			return ctx.Err()
		}
	}
}

// wake sends a client message to the overlay so the event loop returns from
// its blocking read and notices the quit flag.
func (l *Loop) wake() {
	atom, err := xprop.Atm(l.xu, "_SUBCOVER_WAKE")
	if err != nil {
		l.logger.Debug("intern wake atom failed", "error", err)
		return
	}
	win := l.renderer.Window()
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	xproto.SendEvent(l.xu.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
}
