//go:build linux

package desktop

import (
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/stigoleg/noafk/internal/platform"
)

// maxPropertyLength bounds property reads, in 32-bit units.
const maxPropertyLength = 1 << 16

// EWMH source indication for _NET_ACTIVE_WINDOW; pagers are allowed to steal focus.
const sourcePager = 2

var x11Atoms = []string{
	"_NET_CLIENT_LIST",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_HIDDEN",
	"UTF8_STRING",
}

// x11Windows locates and raises windows through the EWMH hints of an X11
// window manager.
type x11Windows struct {
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewWindows connects to the X server named by $DISPLAY. Wayland sessions
// are served through XWayland, where game windows remain visible.
func NewWindows() (platform.Windows, error) {
	if !x11Reachable() {
		return nil, errors.Wrapf(platform.ErrUnsupported, "no X11 display in a %s session; run the game under XWayland", platform.DetectDisplayServer())
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "x11: connect to display")
	}

	w := &x11Windows{
		conn:  conn,
		root:  xproto.Setup(conn).DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom, len(x11Atoms)),
	}
	for _, name := range x11Atoms {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "x11: intern atom %s", name)
		}
		w.atoms[name] = reply.Atom
	}
	return w, nil
}

func (w *x11Windows) Find(title string) (*platform.Window, error) {
	value, err := w.property(w.root, w.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow)
	if err != nil {
		return nil, errors.Wrap(err, "x11: read client list")
	}

	for _, id := range decodeUint32s(value) {
		name := w.title(xproto.Window(id))
		if platform.MatchTitle(name, title) {
			return &platform.Window{ID: uint64(id), Title: name}, nil
		}
	}
	return nil, nil
}

func (w *x11Windows) Activate(win platform.Window) error {
	id := xproto.Window(win.ID)

	hidden, err := w.hidden(id)
	if err != nil {
		return errors.Wrapf(err, "x11: read state of %q", win.Title)
	}
	if hidden {
		if err := xproto.MapWindowChecked(w.conn, id).Check(); err != nil {
			return errors.Wrapf(err, "x11: restore %q", win.Title)
		}
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: id,
		Type:   w.atoms["_NET_ACTIVE_WINDOW"],
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourcePager, xproto.TimeCurrentTime, 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(w.conn, false, w.root, mask, string(ev.Bytes())).Check(); err != nil {
		return errors.Wrapf(err, "x11: activate %q", win.Title)
	}
	return nil
}

func (w *x11Windows) Close() error {
	w.conn.Close()
	return nil
}

func (w *x11Windows) property(win xproto.Window, atom, typ xproto.Atom) ([]byte, error) {
	reply, err := xproto.GetProperty(w.conn, false, win, atom, typ, 0, maxPropertyLength).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// title prefers the UTF-8 EWMH name and falls back to the legacy WM_NAME.
func (w *x11Windows) title(win xproto.Window) string {
	if v, err := w.property(win, w.atoms["_NET_WM_NAME"], w.atoms["UTF8_STRING"]); err == nil && len(v) > 0 {
		return string(v)
	}
	if v, err := w.property(win, xproto.AtomWmName, xproto.GetPropertyTypeAny); err == nil {
		return string(v)
	}
	return ""
}

func (w *x11Windows) hidden(win xproto.Window) (bool, error) {
	value, err := w.property(win, w.atoms["_NET_WM_STATE"], xproto.AtomAtom)
	if err != nil {
		return false, err
	}
	want := uint32(w.atoms["_NET_WM_STATE_HIDDEN"])
	for _, a := range decodeUint32s(value) {
		if a == want {
			return true, nil
		}
	}
	return false, nil
}

// decodeUint32s splits a format-32 property value; trailing bytes are ignored.
func decodeUint32s(b []byte) []uint32 {
	out := make([]uint32, 0, len(b)/4)
	for i := 0; i+4 <= len(b); i += 4 {
		out = append(out, xgb.Get32(b[i:]))
	}
	return out
}

// x11Reachable reports whether an X server (native or XWayland) is advertised.
func x11Reachable() bool {
	return os.Getenv("DISPLAY") != ""
}
