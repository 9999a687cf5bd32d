package chunker

// EmitFunc receives a finalized chunk. The slice aliases the accumulator's
// internal buffer and is only valid for the duration of the call.
type EmitFunc func(chunk []byte) error

// Accumulator owns the in-progress chunk. Incoming spans are appended up
// through their last complete line ending, with any partial trailing line
// deferred until the cut decision has run. Once the chunk reaches the
// threshold it is cut at the first boundary ending at or past the
// threshold, repeatedly, until the residue is below the threshold again.
// A chunk containing no boundary at all keeps growing: line integrity
// outranks the size bound.
type Accumulator struct {
	threshold int
	loc       *Locator
	emit      EmitFunc

	buf []byte
	// scanned is the resume point for cut searches: the end offset of the
	// rightmost boundary already known to fall below the threshold. It is
	// always a boundary end, so decoding may safely restart there.
	scanned int
}

func NewAccumulator(threshold int, loc *Locator, emit EmitFunc) *Accumulator {
	return &Accumulator{
		threshold: threshold,
		loc:       loc,
		emit:      emit,
	}
}

// Append feeds one freshly read span through the trim/cut cycle.
func (a *Accumulator) Append(span []byte) error {

	p, trimmed := a.loc.Last(span)
	if trimmed {
		a.buf = append(a.buf, span[:p]...)
	} else {
		a.buf = append(a.buf, span...)
	}

	for len(a.buf) >= a.threshold {
		// scanned never reaches the threshold: it only ever rests on a
		// boundary proven to end below it
		end, found, below := a.loc.FirstFrom(a.buf[a.scanned:], a.threshold-a.scanned)
		if !found {
			a.scanned += below
			break
		}

		cut := a.scanned + end
		if err := a.emit(a.buf[:cut]); err != nil {
			return err
		}
		a.buf = append(a.buf[:0], a.buf[cut:]...)
		a.scanned = 0
	}

	// the deferred partial line seeds whatever chunk we ended up with
	if trimmed {
		a.buf = append(a.buf, span[p:]...)
	}

	return nil
}

// Flush emits the remaining chunk as-is, regardless of size. Called once
// at end of stream; a final chunk may end mid-line.
func (a *Accumulator) Flush() error {
	if len(a.buf) == 0 {
		return nil
	}

	if err := a.emit(a.buf); err != nil {
		return err
	}
	a.buf = a.buf[:0]
	a.scanned = 0
	return nil
}

// Pending reports how many bytes are buffered but not yet emitted.
func (a *Accumulator) Pending() int {
	return len(a.buf)
}
