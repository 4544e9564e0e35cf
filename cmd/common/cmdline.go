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

package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	ticket "github.com/blinklabs-io/goticket"
	"github.com/blinklabs-io/goticket/internal/render"
	"github.com/spf13/pflag"
)

type GlobalFlags struct {
	Flagset       *pflag.FlagSet
	Output        string
	Strict        bool
	LegacyNodeIds bool
	Verify        string
	CheckKeys     bool
	Debug         bool
	NoColor       bool
}

func NewGlobalFlags(name string) *GlobalFlags {
	f := &GlobalFlags{
		Flagset: pflag.NewFlagSet(name, pflag.ContinueOnError),
	}
	f.Flagset.StringVarP(
		&f.Output,
		"output",
		"o",
		string(render.FormatText),
		"output format: text, json, yaml or cbor",
	)
	f.Flagset.BoolVar(
		&f.Strict,
		"strict",
		false,
		"reject trailing bytes, malformed namespace keys and out of range ports",
	)
	f.Flagset.BoolVar(
		&f.LegacyNodeIds,
		"legacy-node-ids",
		false,
		"show node IDs the way earlier web ticket viewers did",
	)
	f.Flagset.StringVar(
		&f.Verify,
		"verify",
		"",
		"check a local file against the hash of each blob ticket",
	)
	f.Flagset.BoolVar(
		&f.CheckKeys,
		"check-keys",
		false,
		"check that node IDs are valid Ed25519 public keys",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "log decoding steps and show decode errors")
	f.Flagset.BoolVar(&f.NoColor, "no-color", false, "disable styled text output")
	return f
}

func (f *GlobalFlags) Parse(args []string) error {
	if err := f.Flagset.Parse(args); err != nil {
		return err
	}
	if _, err := render.ParseFormat(f.Output); err != nil {
		return err
	}
	return nil
}

// Logger returns a text logger on stderr, at debug level when --debug is given
func (f *GlobalFlags) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	)
}

// DecoderOptions returns the ticket decoder options selected by the flags
func (f *GlobalFlags) DecoderOptions(logger *slog.Logger) []ticket.DecoderOptionFunc {
	return []ticket.DecoderOptionFunc{
		ticket.WithLogger(logger),
		ticket.WithStrict(f.Strict),
		ticket.WithLegacyNodeIds(f.LegacyNodeIds),
	}
}

// Renderer returns a renderer for the selected output format
func (f *GlobalFlags) Renderer(w io.Writer) (*render.Renderer, error) {
	format, err := render.ParseFormat(f.Output)
	if err != nil {
		return nil, err
	}
	return render.New(
		w,
		render.WithFormat(format),
		render.WithColor(!f.NoColor && os.Getenv("NO_COLOR") == ""),
	), nil
}

func (f *GlobalFlags) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] [ticket...]\n\n", f.Flagset.Name())
	fmt.Fprintf(w, "Tickets are read from the arguments, or one per line from stdin.\n\nFlags:\n")
	f.Flagset.SetOutput(w)
	f.Flagset.PrintDefaults()
}
