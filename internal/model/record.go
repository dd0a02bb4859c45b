package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names shared by the source spreadsheets and the Output Table.
const (
	ColTime      = "Time"
	ColLat       = "Lat"
	ColLon       = "Lon"
	ColDuration  = "Duration"
	ColStatus    = "Status"
	ColDateTime  = "date_time"
	ColDate      = "date"
	ColCity      = "City"
	ColPathID    = "Path_ID"
	ColLatRound  = "lat_rnd"
	ColLonRound  = "lon_rnd"
	ColZone      = "zone"
	ColCrossover = "crossover"
)

// RequiredColumns must be present in every source spreadsheet header.
var RequiredColumns = []string{ColTime, ColLat, ColLon, ColDuration, ColStatus}

// DerivedColumns are appended after the source columns, in this order.
var DerivedColumns = []string{
	ColDateTime, ColDate, ColCity, ColPathID,
	ColLatRound, ColLonRound, ColZone, ColCrossover,
}

// Status labels found in the Status column.
const (
	StatusBox     = "box"
	StatusBranch  = "Branch"
	StatusDriving = "Driving"
)

// Record is one row of a source spreadsheet. Coordinates are parsed at load
// time; Duration, DateTime and Date are filled in by the normalizer.
type Record struct {
	Row          int               `json:"row"`
	Time         string            `json:"time"`
	Lat          float64           `json:"lat"`
	Lon          float64           `json:"lon"`
	DurationText string            `json:"duration_text"`
	Duration     float64           `json:"duration_hours"`
	Status       string            `json:"status"`
	DateTime     time.Time         `json:"date_time"`
	Date         string            `json:"date"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// RecordSet holds the records loaded from a single spreadsheet.
type RecordSet struct {
	Path    string   `json:"path"`
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// WithRecords returns a copy of s holding recs instead of s.Records.
func (s RecordSet) WithRecords(recs []Record) RecordSet {
	s.Records = recs
	return s
}

// Trip is a normalized record tagged with its source city and derived fields.
// PathID and Crossover are zero until assigned.
type Trip struct {
	Record
	City      string  `json:"city"`
	PathID    int     `json:"path_id"`
	LatRound  float64 `json:"lat_rnd"`
	LonRound  float64 `json:"lon_rnd"`
	Zone      string  `json:"zone"`
	Crossover int     `json:"crossover"`
}

// Value returns the Output Table cell for column col.
func (t Trip) Value(col string) string {
	switch col {
	case ColTime:
		return t.Time
	case ColLat:
		return FormatFloat(t.Lat)
	case ColLon:
		return FormatFloat(t.Lon)
	case ColDuration:
		return FormatFloat(t.Duration)
	case ColStatus:
		return t.Status
	case ColDateTime:
		if t.DateTime.IsZero() {
			return ""
		}
		return t.DateTime.Format(time.RFC3339)
	case ColDate:
		return t.Date
	case ColCity:
		return t.City
	case ColPathID:
		return optionalInt(t.PathID)
	case ColLatRound:
		if t.Zone == "" {
			return ""
		}
		return FormatCoord(t.LatRound)
	case ColLonRound:
		if t.Zone == "" {
			return ""
		}
		return FormatCoord(t.LonRound)
	case ColZone:
		return t.Zone
	case ColCrossover:
		return optionalInt(t.Crossover)
	default:
		return t.Fields[col]
	}
}

// Facility is one row of an auxiliary facility spreadsheet, kept as text.
type Facility struct {
	Path   string            `json:"path"`
	Values map[string]string `json:"values"`
}

// Value returns the Output Table cell for column col.
func (f Facility) Value(col string) string {
	return f.Values[col]
}

// FormatFloat renders v in the shortest form that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCoord is FormatFloat but keeps one fractional digit on whole
// numbers, so rounded coordinates read "52.0" rather than "52".
func FormatCoord(v float64) string {
	s := FormatFloat(v)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(v, 0) && !math.IsNaN(v) {
		s += ".0"
	}
	return s
}

func optionalInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
