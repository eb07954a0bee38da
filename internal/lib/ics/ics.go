// Package ics формирует календарный объект iCalendar для экспорта мероприятия.
//
// Событие занимает один час: DTEND всегда равен DTSTART плюс час.
// Времена записываются в UTC в формате 20060102T150405Z.
package ics

import (
	"fmt"
	"strings"
	"time"
)

const timeLayout = "20060102T150405Z"

// ContentType значение заголовка Content-Type для календарного ответа.
const ContentType = "text/calendar"

// Build собирает VCALENDAR с одним VEVENT для мероприятия.
// UID выводится из идентификатора мероприятия, stamp задаёт DTSTAMP.
func Build(eventID int, title, location, description string, start, stamp time.Time) []byte {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("VERSION:2.0\n")
	b.WriteString("PRODID:-//membership-portal//EN\n")
	b.WriteString("BEGIN:VEVENT\n")
	fmt.Fprintf(&b, "UID:%d@membership-portal\n", eventID)
	fmt.Fprintf(&b, "DTSTAMP:%s\n", stamp.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "DTSTART:%s\n", start.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "DTEND:%s\n", start.Add(time.Hour).UTC().Format(timeLayout))
	fmt.Fprintf(&b, "SUMMARY:%s\n", title)
	fmt.Fprintf(&b, "LOCATION:%s\n", location)
	fmt.Fprintf(&b, "DESCRIPTION:%s\n", description)
	b.WriteString("END:VEVENT\n")
	b.WriteString("END:VCALENDAR\n")
	return []byte(b.String())
}

// Filename возвращает имя вложения для мероприятия.
func Filename(eventID int) string {
	return fmt.Sprintf("event_%d.ics", eventID)
}
