package formatting

import (
	"net/url"
	"time"
)

// GoogleCalendarLink собирает ссылку «добавить событие в Google Calendar»
// для подтверждённой записи. Времена задаются в UTC.
func GoogleCalendarLink(eventName string, start, end time.Time, description, location string) string {
	const layout = "20060102T150405Z"

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", eventName)
	params.Set("dates", start.UTC().Format(layout)+"/"+end.UTC().Format(layout))
	params.Set("details", description)
	params.Set("location", location)

	return "https://www.google.com/calendar/render?" + params.Encode()
}
