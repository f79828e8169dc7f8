package vtcore

import "github.com/coreterm/vtcore/ansi"

// dcsHandler receives the streamed payload of an active DCS sequence
// between Hook and Unhook.
type dcsHandler interface {
	// put appends one raw payload byte.
	put(b byte)
	// unhook is called once the payload is complete (ST, BEL, or a
	// cancelled sequence via CAN/SUB).
	unhook()
}

// Hook begins a Device Control String sequence. action selects the
// handler: 'q' (with no intermediate bytes) is Sixel image
// data; every other DCS this module doesn't implement is absorbed by
// a discarding handler so its payload bytes don't leak into Print.
func (t *Terminal) Hook(params *ansi.Params, intermediates []byte, ignore bool, action rune) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch action {
	case 'q':
		if t.sixelEnabled && len(intermediates) == 0 {
			t.activeDCS = newSixelHandler(t, snapshotParams(params))
			return
		}
	}

	t.activeDCS = discardDCSHandler{}
}

// Put streams one payload byte of the active DCS sequence to its handler.
func (t *Terminal) Put(b byte) {
	t.mu.Lock()
	handler := t.activeDCS
	t.mu.Unlock()

	if handler != nil {
		handler.put(b)
	}
}

// Unhook finalizes the active DCS sequence.
func (t *Terminal) Unhook() {
	t.mu.Lock()
	handler := t.activeDCS
	t.activeDCS = nil
	t.mu.Unlock()

	if handler != nil {
		handler.unhook()
	}
}

// snapshotParams copies a Params accumulator's raw parameter groups
// into a plain slice, since the accumulator is reused by the parser
// for the next sequence as soon as Hook returns.
func snapshotParams(params *ansi.Params) []int64 {
	groups := params.Groups()
	out := make([]int64, 0, len(groups))
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, int64(g[0]))
		} else {
			out = append(out, 0)
		}
	}
	return out
}

// discardDCSHandler absorbs payload bytes for DCS sequences this
// module doesn't interpret.
type discardDCSHandler struct{}

func (discardDCSHandler) put(b byte) {}
func (discardDCSHandler) unhook()    {}

// sixelHandler accumulates a Sixel DCS payload and decodes it into a
// bitmap once the sequence terminates.
type sixelHandler struct {
	t      *Terminal
	params []int64
	buf    []byte
}

func newSixelHandler(t *Terminal, params []int64) *sixelHandler {
	return &sixelHandler{t: t, params: params}
}

func (h *sixelHandler) put(b byte) {
	h.buf = append(h.buf, b)
}

func (h *sixelHandler) unhook() {
	h.t.mu.RLock()
	middleware := h.t.middleware
	t := h.t
	t.mu.RUnlock()

	deliver := func(params [][]uint16, data []byte) {
		rawParams := make([]int64, len(params))
		for i, g := range params {
			if len(g) > 0 {
				rawParams[i] = int64(g[0])
			}
		}

		img, err := ParseSixel(rawParams, data)
		if err != nil || img == nil || img.Width == 0 || img.Height == 0 {
			return
		}

		t.mu.RLock()
		provider := t.imageProvider
		t.mu.RUnlock()
		provider.CreateImageFromBitmap(img.Data, int(img.Width), int(img.Height))

		t.placeImageBitmap(img.Width, img.Height, img.Data)
	}

	groups := make([][]uint16, len(h.params))
	for i, p := range h.params {
		groups[i] = []uint16{uint16(p)}
	}

	if middleware != nil && middleware.SixelReceived != nil {
		middleware.SixelReceived(groups, h.buf, deliver)
		return
	}

	deliver(groups, h.buf)
}
