package ical

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/soh335/ical"

	"git.sr.ht/~mariusor/metis/calendar"
	"git.sr.ht/~mariusor/metis/storage"
	"git.sr.ht/~mariusor/metis/storage/memory"
)

type handler struct {
	Version string
	events  storage.Loader
	catalog *memory.Catalog
}

func NewHandler(events storage.Loader, catalog *memory.Catalog, version string) *handler {
	return &handler{
		Version: version,
		events:  events,
		catalog: catalog,
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	// /{client}/{year}
	clientURL := strings.TrimSpace(chi.URLParam(r, "client"))
	yearURL := strings.ToLower(chi.URLParam(r, "year"))

	year := now.Year()
	if len(yearURL) > 0 {
		var err error
		if year, err = strconv.Atoi(yearURL); err != nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(fmt.Sprintf("Invalid year %s", yearURL)))
			return
		}
	}

	var client calendar.Client
	if clientURL != "" {
		var ok bool
		if client, ok = h.catalog.ClientByID(clientURL); !ok {
			if client, ok = h.catalog.ClientByName(clientURL); !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(fmt.Sprintf("Unknown client %s", clientURL)))
				return
			}
		}
	}

	date := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	// use one year
	var duration time.Duration = 8759*time.Hour + 59*time.Minute + 59*time.Second

	events := h.events.LoadEvents(storage.Cursor(date, duration))
	if client.ID != "" {
		filtered := make(calendar.Events, 0, len(events))
		for _, ev := range events {
			if ev.ClientID == client.ID {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	cal := ical.NewBasicVCalendar()
	cal.PRODID = fmt.Sprintf("-//METIS//CONTENT-CAL//EN/%s", h.Version)

	cal.VERSION = "2.0"
	cal.URL = fmt.Sprintf("/%s/%d", client.Name, year)

	name := "Metis"
	description := "Metis, planned content publications"
	if client.Name != "" {
		description = fmt.Sprintf("Metis, planned content for %s", client.Name)
	}
	cal.NAME = name
	cal.X_WR_CALNAME = name
	cal.DESCRIPTION = description
	cal.X_WR_CALDESC = description

	tz := date.Location().String()
	cal.TIMEZONE_ID = tz
	cal.X_WR_TIMEZONE = tz

	cal.REFRESH_INTERVAL = "PT1H"
	cal.X_PUBLISHED_TTL = "PT1H"

	if client.Color != "" {
		cal.COLOR = client.Color
	}
	cal.CALSCALE = "GREGORIAN"
	cal.METHOD = "PUBLISH"

	for _, ev := range events {
		summary := ev.Title
		if owner, ok := h.catalog.ClientByID(ev.ClientID); ok && client.ID == "" {
			summary = fmt.Sprintf("[%s] %s", owner.Name, summary)
		}
		description := ev.Description
		if len(ev.Images) > 0 {
			description = fmt.Sprintf("%s\n%s", description, strings.Join(ev.Images, "\n"))
		}

		e := &ical.VEvent{
			UID:         ev.ID,
			DTSTAMP:     time.Now(),
			DTSTART:     ev.StartTime,
			DTEND:       ev.EndTime,
			SUMMARY:     summary,
			DESCRIPTION: description,
			TZID:        tz,
			AllDay:      ev.EndTime.Sub(ev.StartTime) > 24*time.Hour,
		}
		cal.VComponent = append(cal.VComponent, e)
	}

	b := &bytes.Buffer{}
	if err := cal.Encode(b); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fmt.Sprintf("%s", err)))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Write(b.Bytes())
}
