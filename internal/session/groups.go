package session

import (
	"time"

	"github.com/Osisami00/Nelfund-Project/internal/model"
)

// DayGroup is a contiguous run of messages sharing a calendar date, in
// transcript order. Used by renderers that print date separators.
type DayGroup struct {
	Date     time.Time // midnight, local time
	Messages []model.Message
}

// GroupByDate partitions the transcript into per-day groups. Order within a
// group and across groups follows the transcript; an empty transcript yields
// no groups.
func (s *Session) GroupByDate() []DayGroup {
	var groups []DayGroup
	for _, m := range s.messages {
		ts := m.Timestamp.Local()
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Messages = append(groups[n-1].Messages, m)
			continue
		}
		groups = append(groups, DayGroup{Date: day, Messages: []model.Message{m}})
	}
	return groups
}
