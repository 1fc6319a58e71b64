// Package gviz decodes the Google Visualization query response format that
// the spreadsheet "gviz/tq" endpoint returns.
package gviz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed is returned when a payload cannot be read as a gviz table.
var ErrMalformed = errors.New("gviz: malformed payload")

var (
	wrapperPrefix = regexp.MustCompile(`^\s*(?:\)\]\}'\s*)?/\*O_o\*/\s*google\.visualization\.Query\.setResponse\(`)
	wrapperSuffix = regexp.MustCompile(`\);?\s*$`)
)

// Response mirrors the JSON object passed to setResponse.
type Response struct {
	Version string         `json:"version"`
	ReqID   string         `json:"reqId"`
	Status  string         `json:"status"`
	Sig     string         `json:"sig,omitempty"`
	Errors  []ResponseNote `json:"errors,omitempty"`
	Table   *ResponseTable `json:"table"`
}

// ResponseNote is an error or warning entry of a gviz response.
type ResponseNote struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

type ResponseTable struct {
	Cols             []Column      `json:"cols"`
	Rows             []ResponseRow `json:"rows"`
	ParsedNumHeaders int           `json:"parsedNumHeaders"`
}

type Column struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type ResponseRow struct {
	C []*ResponseCell `json:"c"`
}

type ResponseCell struct {
	V any    `json:"v"`
	F string `json:"f,omitempty"`
}

// Unwrap strips the JavaScript callback wrapper and returns the JSON body.
// Input that is not wrapped is returned trimmed.
func Unwrap(body []byte) ([]byte, error) {
	text := bytes.TrimSpace(body)
	if loc := wrapperPrefix.FindIndex(text); loc != nil {
		text = text[loc[1]:]
		text = wrapperSuffix.ReplaceAll(text, nil)
	}
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	if !json.Valid(text) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	return text, nil
}

// Parse decodes an unwrapped (or wrapped) gviz response.
func Parse(body []byte) (*Response, error) {
	payload, err := Unwrap(body)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.EqualFold(resp.Status, "error") {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msg := strings.TrimSpace(e.Message)
			if msg == "" {
				msg = e.Reason
			}
			if msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return nil, fmt.Errorf("%w: upstream error: %s", ErrMalformed, strings.Join(msgs, "; "))
	}
	if resp.Table == nil {
		return nil, fmt.Errorf("%w: missing table", ErrMalformed)
	}
	return &resp, nil
}

// Decode parses a gviz payload straight into a Table.
func Decode(body []byte) (*Table, error) {
	resp, err := Parse(body)
	if err != nil {
		return nil, err
	}
	return resp.Table.ToTable(), nil
}

// ToTable maps each row onto the column labels. Cells under a blank label
// are skipped; a missing or null cell becomes blank.
func (t *ResponseTable) ToTable() *Table {
	labels := make([]string, len(t.Cols))
	for i, col := range t.Cols {
		labels[i] = col.Label
	}
	out := &Table{Labels: labels, Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		row := make(Row, len(labels))
		for idx, label := range labels {
			if label == "" {
				continue
			}
			v := Blank
			if idx < len(r.C) && r.C[idx] != nil {
				v = FromAny(r.C[idx].V)
			}
			row[label] = v
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Encode renders a Table back into an unwrapped gviz JSON response. It is
// what the proxy serves for non-gviz sources.
func Encode(t *Table) ([]byte, error) {
	resp := Response{Version: "0.6", Status: "ok", Table: &ResponseTable{}}
	if t != nil {
		for i, label := range t.Labels {
			resp.Table.Cols = append(resp.Table.Cols, Column{ID: columnID(i), Label: label, Type: "string"})
		}
		for _, row := range t.Rows {
			cells := make([]*ResponseCell, len(t.Labels))
			for i, label := range t.Labels {
				if label == "" {
					continue
				}
				if v, ok := row[label]; ok && !v.IsNull() {
					cells[i] = &ResponseCell{V: v.Raw()}
				}
			}
			resp.Table.Rows = append(resp.Table.Rows, ResponseRow{C: cells})
		}
	}
	return json.Marshal(resp)
}

// columnID produces spreadsheet column letters: A..Z, AA..
func columnID(i int) string {
	id := ""
	for i >= 0 {
		id = string(rune('A'+i%26)) + id
		i = i/26 - 1
	}
	return id
}
