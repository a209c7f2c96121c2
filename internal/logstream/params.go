// Package logstream maintains the live log connection for one viewed
// service: a single socket per view, re-dialed on parameter changes, with a
// capped in-memory line buffer.
package logstream

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Default parameter values for a fresh log view.
const (
	DefaultTail    = 100
	DefaultSince   = "all"
	DefaultRunType = "native"
)

// Params are the user-adjustable knobs of a log subscription. An applied
// Params is always valid; drafts are validated with ParseTail before being
// promoted.
type Params struct {
	Tail    int
	Since   string
	Search  string
	RunType string
}

// DefaultParams returns the parameters used before the user adjusts anything.
func DefaultParams() Params {
	return Params{Tail: DefaultTail, Since: DefaultSince, RunType: DefaultRunType}
}

// Validate rejects parameter sets whose tail is not a positive count.
func (p Params) Validate() error {
	if p.Tail <= 0 {
		return errors.New("tail must be a positive number")
	}
	return nil
}

// query renders the parameters and target into the connection query string.
func (p Params) query(containerID string) url.Values {
	since := p.Since
	if since == "" {
		since = DefaultSince
	}
	runType := p.RunType
	if runType == "" {
		runType = DefaultRunType
	}
	return url.Values{
		"containerId": {containerID},
		"tail":        {strconv.Itoa(p.Tail)},
		"since":       {since},
		"search":      {p.Search},
		"runType":     {runType},
	}
}

// ParseTail parses a draft tail value, requiring a positive integer.
func ParseTail(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.New("tail is required")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return 0, errors.New("tail must be a positive number")
	}
	return n, nil
}
