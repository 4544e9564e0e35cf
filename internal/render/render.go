// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render writes decoded tickets for the command line tools
package render

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ticket "github.com/blinklabs-io/goticket"
	"github.com/blinklabs-io/goticket/cbor"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat returns the output format with the given name
func ParseFormat(name string) (Format, error) {
	for _, format := range formats {
		if string(format) == strings.ToLower(name) {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %s", name)
}

const invalidTicketMessage = "Invalid ticket"

// Annotation is an extra result shown alongside a ticket, such as the
// outcome of a content check
type Annotation struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// envelope is the structured output for one input line
type envelope struct {
	Type        string        `json:"type"                  yaml:"type"`
	Ticket      ticket.Ticket `json:"ticket,omitempty"      yaml:"ticket,omitempty"`
	Error       string        `json:"error,omitempty"       yaml:"error,omitempty"`
	Annotations []Annotation  `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	err     lipgloss.Style
}

// Renderer writes tickets to an output stream in a single format
type Renderer struct {
	w      io.Writer
	format Format
	color  bool
	styles styles
	count  int
}

type RendererOptionFunc func(*Renderer)

func WithFormat(format Format) RendererOptionFunc {
	return func(r *Renderer) {
		r.format = format
	}
}

// WithColor enables terminal styling of text output when the writer supports it
func WithColor(color bool) RendererOptionFunc {
	return func(r *Renderer) {
		r.color = color
	}
}

func New(w io.Writer, options ...RendererOptionFunc) *Renderer {
	r := &Renderer{
		w:      w,
		format: FormatText,
	}
	for _, option := range options {
		option(r)
	}
	if r.color {
		lr := lipgloss.NewRenderer(w)
		r.styles = styles{
			heading: lr.NewStyle().Bold(true),
			label:   lr.NewStyle().Foreground(lipgloss.Color("245")),
			err:     lr.NewStyle().Foreground(lipgloss.Color("196")),
		}
	} else {
		r.styles = styles{
			heading: lipgloss.NewStyle(),
			label:   lipgloss.NewStyle(),
			err:     lipgloss.NewStyle(),
		}
	}
	return r
}

// Ticket writes a decoded ticket followed by any annotations
func (r *Renderer) Ticket(t ticket.Ticket, annotations ...Annotation) error {
	if r.format == FormatText {
		return r.writeTicketText(t, annotations)
	}
	return r.writeEnvelope(envelope{
		Type:        t.Kind().String(),
		Ticket:      t,
		Annotations: annotations,
	})
}

// Invalid reports input that could not be decoded. The cause is only shown
// when detail is true
func (r *Renderer) Invalid(err error, detail bool) error {
	msg := invalidTicketMessage
	if detail && err != nil {
		msg = fmt.Sprintf("%s: %s", invalidTicketMessage, err)
	}
	if r.format == FormatText {
		r.separate()
		_, werr := fmt.Fprintln(r.w, r.styles.err.Render(msg))
		return werr
	}
	return r.writeEnvelope(envelope{
		Type:  "invalid",
		Error: msg,
	})
}

// separate puts a blank line between consecutive text entries
func (r *Renderer) separate() {
	if r.count > 0 {
		fmt.Fprintln(r.w)
	}
	r.count++
}

func (r *Renderer) writeEnvelope(env envelope) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case FormatYAML:
		if r.count > 0 {
			if _, err := io.WriteString(r.w, "---\n"); err != nil {
				return err
			}
		}
		r.count++
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		var data []byte
		var err error
		if env.Ticket != nil && len(env.Annotations) == 0 {
			data, err = ticket.MarshalRecord(env.Ticket)
		} else {
			data, err = cbor.Encode(&env)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.w, hex.EncodeToString(data))
		return err
	}
	return fmt.Errorf("unknown output format: %s", r.format)
}
