package jobkorea

import (
	"net/url"
	"strings"
)

// Job represents a single job listing extracted from a listing page.
// Location and Date are nil when they could not be extracted.
type Job struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location *string `json:"location"`
	Date     *string `json:"date"` // Source text, never parsed
	Link     string  `json:"link"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.Title == "" {
		return Errorf(EINVALID, "job title required")
	}
	if j.Link == "" {
		return Errorf(EINVALID, "job link required")
	}
	u, err := url.Parse(j.Link)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "job link must be absolute: %q", j.Link)
	}
	return nil
}

// OptionalString returns a pointer to s, or nil if s is empty.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ResolveLink resolves href against base and returns an absolute http(s) URL.
func ResolveLink(base *url.URL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", Errorf(EINVALID, "empty link")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", Errorf(EINVALID, "invalid link %q: %v", href, err)
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported link scheme: %q", href)
	}
	if resolved.Host == "" {
		return "", Errorf(EINVALID, "link has no host: %q", href)
	}
	return resolved.String(), nil
}

// MustParseBaseURL parses a base URL, falling back to DefaultBaseURL when
// raw is empty. It panics on malformed input and is meant for constructors
// that take configuration from code, not users.
func MustParseBaseURL(raw string) *url.URL {
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		panic("jobkorea: invalid base URL: " + err.Error())
	}
	return u
}
