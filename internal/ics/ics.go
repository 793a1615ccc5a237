// Package ics exports the day's items as an iCalendar feed and reads
// timed events back from one.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/timeblock/internal/item"
)

const productID = "-//timeblock//timeblock//EN"

// Encode writes items as VEVENTs placed on date. Only the calendar day of
// date is used.
func Encode(w io.Writer, items []item.Item, date, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	for _, it := range items {
		ev := cal.AddEvent(UID(it.ID))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(it.Content)
		ev.SetStartAt(onDay(day, it.Start))
		ev.SetEndAt(onDay(day, it.End))
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// UID returns the event uid for an item id.
func UID(id int64) string {
	return fmt.Sprintf("%d@timeblock", id)
}

func onDay(day, t time.Time) time.Time {
	return day.Add(t.Sub(item.DayStart()))
}

// Event is a timed VEVENT projected onto the base day.
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
}

// Item converts the event into an editable item with the given id.
func (e Event) Item(id int64) (item.Item, error) {
	return item.New(id, e.Summary, e.Start, e.End)
}

// Decode parses an iCalendar payload. All-day events and events without a
// usable start are skipped and counted.
func Decode(r io.Reader) (events []Event, skipped int, err error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing calendar: %w", err)
	}

	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	return events, skipped, nil
}

var errAllDay = errors.New("all-day event")

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var out Event
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = strings.TrimSpace(p.Value)
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, errors.New("missing DTSTART")
	}
	if isDateOnly(dtStart) {
		return out, errAllDay
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(item.DefaultDuration)
	}

	out.Start, out.End = project(start, end)
	return out, nil
}

func isDateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// project maps an event onto the base day, snapped to the grid. Events
// that run past midnight end at 24:00.
func project(start, end time.Time) (time.Time, time.Time) {
	s := item.Snap(item.OnBaseDay(start))
	e := item.Snap(item.OnBaseDay(end))

	sy, sm, sd := start.In(time.Local).Date()
	ey, em, ed := end.In(time.Local).Date()
	if ey != sy || em != sm || ed != sd {
		e = item.DayEnd()
	}
	if e.After(item.DayEnd()) {
		e = item.DayEnd()
	}
	if e.Before(s) {
		e = s
	}
	return s, e
}
