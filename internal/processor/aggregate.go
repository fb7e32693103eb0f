package processor

// SilenceRecord is a finalized silence region for one scanned file: the raw
// event plus the file's total duration and path. Records are immutable once
// emitted.
type SilenceRecord struct {
	SilenceEvent
	Total *float64
	Path  string
}

// Trailing reports whether the silence runs to the end of the file: an onset
// was seen but no end or duration ever closed it.
func (r SilenceRecord) Trailing() bool {
	return r.End == nil && r.Dur == nil && r.Start != nil
}

// Aggregate turns the raw event sequence for one file into final records.
//
// Adjacent events with identical start/end/duration marks collapse into one
// record; the parser can re-emit an unchanged event when a line added no new
// fields, and those repeats carry no information. The comparison runs before
// the total duration is attached, so the total never participates in the key.
// Events with no fields at all are dropped outright.
func Aggregate(events []SilenceEvent, total *float64, path string) []SilenceRecord {
	var (
		records []SilenceRecord
		prev    *SilenceEvent
	)

	for i := range events {
		ev := events[i]
		if ev.empty() {
			continue
		}
		if prev != nil && sameEvent(*prev, ev) {
			continue
		}
		prev = &events[i]

		records = append(records, SilenceRecord{
			SilenceEvent: ev,
			Total:        total,
			Path:         path,
		})
	}

	return records
}

func sameEvent(a, b SilenceEvent) bool {
	return sameMark(a.Start, b.Start) && sameMark(a.End, b.End) && sameMark(a.Dur, b.Dur)
}

func sameMark(a, b *Mark) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Seconds == b.Seconds
}
