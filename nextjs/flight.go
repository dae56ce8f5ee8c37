package nextjs

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/jobkorea"
)

// flightPush is the call the App Router uses to stream flight chunks into
// the page.
const flightPush = "self.__next_f.push("

// flightChunks returns the string payloads pushed by a script, in order.
// Only data chunks (type 1) are returned; bootstrap and binary chunks are
// ignored.
func flightChunks(script string) []string {
	var chunks []string
	for {
		i := strings.Index(script, flightPush)
		if i < 0 {
			return chunks
		}
		script = script[i+len(flightPush):]

		var args []json.RawMessage
		if err := json.NewDecoder(strings.NewReader(script)).Decode(&args); err != nil {
			continue
		}
		if len(args) < 2 {
			continue
		}
		var kind int
		if err := json.Unmarshal(args[0], &kind); err != nil || kind != 1 {
			continue
		}
		var chunk string
		if err := json.Unmarshal(args[1], &chunk); err != nil {
			continue
		}
		chunks = append(chunks, chunk)
	}
}

// flightRows splits a flight payload into the JSON values of its rows.
// Rows have the form "<hex id>:<value>"; rows whose value is not a JSON
// object or array (module references, text rows, hints) are dropped.
func flightRows(payload string) []string {
	var rows []string
	for _, line := range strings.Split(payload, "\n") {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		value := strings.TrimSpace(line[i+1:])
		if strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{") {
			rows = append(rows, value)
		}
	}
	return rows
}

// walkJSON decodes the first JSON value in text and reports every job
// object it contains. Objects are visited in document order, nested objects
// before the object that contains them.
func walkJSON(text string, found func(posting)) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	_, err := walkValue(dec, found)
	return err
}

// walkValue consumes one value from dec. Scalars are returned; containers
// are walked and nil is returned.
func walkValue(dec *json.Decoder, found func(posting)) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '[':
		for dec.More() {
			if _, err := walkValue(dec, found); err != nil {
				return nil, err
			}
		}
	case '{':
		var fields postingFields
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			value, err := walkValue(dec, found)
			if err != nil {
				return nil, err
			}
			fields.set(key, value)
		}
		if p, ok := fields.posting(); ok {
			found(p)
		}
	}

	// Closing delimiter.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return nil, nil
}

// postingFields accumulates the scalar fields of one JSON object that
// matter for a job posting.
type postingFields struct {
	id      any
	title   any
	company any
}

func (f *postingFields) set(key string, value any) {
	switch key {
	case "id":
		f.id = value
	case "title":
		f.title = value
	case "postingCompanyName":
		f.company = value
	}
}

// posting returns the job posting the fields describe, if they describe
// one: a numeric id, a non-empty title and a company name.
func (f *postingFields) posting() (posting, bool) {
	var id string
	switch v := f.id.(type) {
	case string:
		id = v
	case json.Number:
		id = v.String()
	default:
		return posting{}, false
	}
	if !isDigits(id) {
		return posting{}, false
	}

	title, ok := f.title.(string)
	if !ok || strings.TrimSpace(title) == "" {
		return posting{}, false
	}
	company, ok := f.company.(string)
	if !ok {
		return posting{}, false
	}
	if strings.TrimSpace(company) == "" {
		company = jobkorea.Unknown
	}
	return posting{id: id, title: title, company: company}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
