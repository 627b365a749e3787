package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Week lists weekdays in Monday-first order.
var Week = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeeklySummary holds minutes per weekday, indexed Monday=0 .. Sunday=6.
type WeeklySummary [7]int64

func weekIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func (w *WeeklySummary) Add(day time.Weekday, minutes int64) {
	w[weekIndex(day)] += minutes
}

func (w WeeklySummary) Minutes(day time.Weekday) int64 {
	return w[weekIndex(day)]
}

func (w WeeklySummary) Total() int64 {
	var total int64
	for _, m := range w {
		total += m
	}
	return total
}

// MarshalJSON emits {"MONDAY": n, ..., "SUNDAY": n} in calendar order.
func (w WeeklySummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range Week {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(strings.ToUpper(day.String()))
		buf.Write(key)
		buf.WriteByte(':')
		val, _ := json.Marshal(w[i])
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (w *WeeklySummary) UnmarshalJSON(b []byte) error {
	var raw map[string]int64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*w = WeeklySummary{}
	for i, day := range Week {
		w[i] = raw[strings.ToUpper(day.String())]
	}
	return nil
}
