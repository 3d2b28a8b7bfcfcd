package ui

import (
	"strconv"

	"github.com/stigoleg/autoclicker/internal/config"
)

type field int

const (
	fieldHours field = iota
	fieldMinutes
	fieldSeconds
	fieldMillis
	fieldJitterMs
	fieldJitter
	fieldButton
	fieldClickType
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Hours",
	"Minutes",
	"Seconds",
	"Milliseconds",
	"Jitter (ms)",
	"Jitter",
	"Button",
	"Click type",
}

// maxDigits bounds typed numbers; the interval is clamped later anyway.
const maxDigits = 6

func (f field) String() string {
	if f < 0 || f >= fieldCount {
		return "?"
	}
	return fieldLabels[f]
}

func (f field) numeric() bool { return f <= fieldJitterMs }

func number(s *config.Settings, f field) *int64 {
	switch f {
	case fieldHours:
		return &s.Hours
	case fieldMinutes:
		return &s.Minutes
	case fieldSeconds:
		return &s.Seconds
	case fieldMillis:
		return &s.Millis
	case fieldJitterMs:
		return &s.JitterMs
	}
	return nil
}

func fieldValue(s config.Settings, f field) string {
	if n := number(&s, f); n != nil {
		return strconv.FormatInt(*n, 10)
	}
	switch f {
	case fieldJitter:
		if s.Jitter {
			return "on"
		}
		return "off"
	case fieldButton:
		return s.Button
	case fieldClickType:
		return s.ClickType
	}
	return ""
}

func cycle(names []string, current string, delta int) string {
	i := 0
	for j, n := range names {
		if n == current {
			i = j
			break
		}
	}
	i = (i + delta + len(names)) % len(names)
	return names[i]
}

// adjust steps a number by delta, toggles jitter, or cycles a choice.
func adjust(s *config.Settings, f field, delta int) {
	if n := number(s, f); n != nil {
		*n = max(*n+int64(delta), 0)
		return
	}
	switch f {
	case fieldJitter:
		s.Jitter = !s.Jitter
	case fieldButton:
		s.Button = cycle(config.ButtonNames, s.Button, delta)
	case fieldClickType:
		s.ClickType = cycle(config.ClickTypeNames, s.ClickType, delta)
	}
}

func typeDigit(s *config.Settings, f field, d int64) {
	n := number(s, f)
	if n == nil || len(strconv.FormatInt(*n, 10)) >= maxDigits {
		return
	}
	*n = *n*10 + d
}

func deleteDigit(s *config.Settings, f field) {
	if n := number(s, f); n != nil {
		*n /= 10
	}
}
