// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package weather finds weather measurements in free-form Russian or
// English text. A mention starts at a temperature reading; humidity,
// pressure, wind speed, and a description are then looked up, in that
// order, in the text that follows it on the same line.
package weather

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/weather-extractor/pkg/types"
)

// temperaturePattern anchors a mention. The unit suffix only absorbs
// spaces and tabs so a mention never reaches into the next line. The unit
// letter is captured so it can be given back when it starts a word.
var temperaturePattern = regexp.MustCompile(
	`(?i)(?:температура|temperature|temp|t)[:\s]*([+-]?\d{1,3}(?:\.\d{1,2})?)[ \t]*°?([CF])?`)

// fieldPattern is an optional field searched for after the anchor.
type fieldPattern struct {
	re  *regexp.Regexp
	set func(r *types.WeatherRecord, value string)
}

var fieldPatterns = []fieldPattern{
	{
		re:  regexp.MustCompile(`(?i)(?:влажность|humidity|hum)[:\s]*(\d{1,3})\s*%`),
		set: func(r *types.WeatherRecord, v string) { r.Humidity = v },
	},
	{
		re:  regexp.MustCompile(`(?i)(?:давление|pressure|press)[:\s]*(\d{3,4})\s*(?:hPa|мм|mm)`),
		set: func(r *types.WeatherRecord, v string) { r.Pressure = v },
	},
	{
		re:  regexp.MustCompile(`(?i)(?:ветер|wind)[:\s]*(\d{1,3}(?:\.\d{1,2})?)\s*(?:м/с|km/h|mph)`),
		set: func(r *types.WeatherRecord, v string) { r.WindSpeed = v },
	},
	{
		re:  regexp.MustCompile(`(?i)(?:описание|description|weather)[:\s]*([а-яА-ЯёЁa-zA-Z\s]+)`),
		set: func(r *types.WeatherRecord, v string) { r.Description = v },
	},
}

// trailingDescription matches a keyword-less description closing a line,
// as in "..., ветер: 5 м/с, ясно".
var trailingDescription = regexp.MustCompile(`^\s*[,;]\s*([а-яА-ЯёЁa-zA-Z][а-яА-ЯёЁa-zA-Z\s]*?)\s*[.!]?\s*$`)

// Extractor finds weather mentions in text. It holds no mutable state and
// is safe for concurrent use.
type Extractor struct {
	unbounded bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithUnboundedFieldSearch lets optional fields of a mention be taken from
// anywhere later on its line, including past the next temperature reading.
// The next mention is then searched for after the last consumed field.
func WithUnboundedFieldSearch() Option {
	return func(e *Extractor) { e.unbounded = true }
}

// New returns an Extractor. By default a mention's optional fields are
// looked up only up to the next temperature reading on the same line.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractOne returns the first mention in text. The boolean is false when
// text has no temperature reading.
func (e *Extractor) ExtractOne(text string) (types.WeatherRecord, bool) {
	m, ok := e.scan(text).next(0)
	if !ok {
		return types.WeatherRecord{}, false
	}
	return m.record, true
}

// ExtractAll returns every mention in text in document order, or nil when
// there is none.
func (e *Extractor) ExtractAll(text string) []types.WeatherRecord {
	var records []types.WeatherRecord
	s := e.scan(text)
	for pos := 0; pos < len(text); {
		m, ok := s.next(pos)
		if !ok {
			break
		}
		records = append(records, m.record)
		pos = m.end
	}
	return records
}

// mention is one extracted record and the offset just past the text it
// consumed.
type mention struct {
	record types.WeatherRecord
	end    int
}

// scanner walks one text forward. It remembers the end of the current line
// and, per field pattern, the last search result, so a long line is not
// rescanned once per mention. Offsets passed to next must not decrease.
type scanner struct {
	text      string
	unbounded bool

	lineStop int // end of the line holding offsets up to lineStop; -1 before the first line
	fields   []fieldSearch

	// search counts
	lineScans     int
	fieldSearches int
}

// fieldSearch is the result of searching text[from:to] for one field.
// loc is nil when there was no match.
type fieldSearch struct {
	from, to int
	loc      []int
	done     bool
}

func (e *Extractor) scan(text string) *scanner {
	return &scanner{
		text:      text,
		unbounded: e.unbounded,
		lineStop:  -1,
		fields:    make([]fieldSearch, len(fieldPatterns)),
	}
}

// next finds the first mention starting at or after pos.
func (s *scanner) next(pos int) (mention, bool) {
	text := s.text
	anchor := find(temperaturePattern, text, pos, len(text))
	if anchor == nil {
		return mention{}, false
	}
	start := anchor[1]
	if anchor[4] >= 0 && !endsWord(text, anchor[5]) {
		start = anchor[4]
	}

	rec := types.WeatherRecord{
		Temperature: strings.TrimPrefix(text[anchor[2]:anchor[3]], "+"),
	}

	limit := s.lineEnd(start)
	closesLine := true
	if !s.unbounded {
		if following := find(temperaturePattern, text, start, limit); following != nil {
			limit = following[0]
			closesLine = false
		}
	}

	end := s.fill(&rec, start, limit, closesLine)
	return mention{record: rec, end: end}, true
}

// fill searches text[from:to] for the optional fields in order, each after
// the previous match, and returns the offset after the last match.
func (s *scanner) fill(rec *types.WeatherRecord, from, to int, closesLine bool) int {
	text := s.text
	cursor := from
	for i, f := range fieldPatterns {
		loc := s.findField(i, cursor, to)
		if loc == nil {
			continue
		}
		value := strings.TrimSpace(text[loc[2]:loc[3]])
		if value == "" {
			continue
		}
		f.set(rec, value)
		cursor = loc[1]
	}

	if rec.Description == "" && closesLine {
		if m := trailingDescription.FindStringSubmatch(text[cursor:to]); m != nil {
			rec.Description = strings.TrimSpace(m[1])
			cursor = to
		}
	}
	return cursor
}

// findField returns the leftmost match of field i in text[from:to]. A
// previous search over the same to that started at or before from, and
// found nothing or a match starting at or after from, answers for from
// as well: a match at a given offset does not depend on where the search
// began.
func (s *scanner) findField(i, from, to int) []int {
	c := &s.fields[i]
	if c.done && c.to == to && c.from <= from && (c.loc == nil || c.loc[0] >= from) {
		return c.loc
	}
	s.fieldSearches++
	*c = fieldSearch{from: from, to: to, loc: find(fieldPatterns[i].re, s.text, from, to), done: true}
	return c.loc
}

// lineEnd returns the offset of the first newline at or after i, or
// len(text).
func (s *scanner) lineEnd(i int) int {
	if i <= s.lineStop {
		return s.lineStop
	}
	s.lineScans++
	s.lineStop = len(s.text)
	if n := strings.IndexByte(s.text[i:], '\n'); n >= 0 {
		s.lineStop = i + n
	}
	return s.lineStop
}

// find returns the submatch offsets, relative to text, of the leftmost
// match of re inside text[from:to] that begins a word.
func find(re *regexp.Regexp, text string, from, to int) []int {
	for from < to {
		loc := re.FindStringSubmatchIndex(text[from:to])
		if loc == nil {
			return nil
		}
		start := from + loc[0]
		if startsWord(text, start) {
			for i := range loc {
				if loc[i] >= 0 {
					loc[i] += from
				}
			}
			return loc
		}
		_, size := utf8.DecodeRuneInString(text[start:to])
		from = start + size
	}
	return nil
}

// startsWord reports whether the rune before offset i is not part of a word.
func startsWord(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// endsWord reports whether the rune at offset i is not part of a word.
func endsWord(text string, i int) bool {
	if i == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
