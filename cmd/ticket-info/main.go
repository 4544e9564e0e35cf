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

// ticket-info decodes node, blob and document tickets and prints what they
// contain.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	ticket "github.com/blinklabs-io/goticket"
	"github.com/blinklabs-io/goticket/cmd/common"
	"github.com/blinklabs-io/goticket/internal/keycheck"
	"github.com/blinklabs-io/goticket/internal/render"
	"github.com/spf13/pflag"
)

const programName = "ticket-info"

// Long tickets with many addresses exceed bufio's default line limit
const maxLineLen = 1024 * 1024

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	flags     *common.GlobalFlags
	logger    *slog.Logger
	decoder   *ticket.Decoder
	keyParser *ticket.Decoder
	renderer  *render.Renderer
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	f := common.NewGlobalFlags(programName)
	f.Flagset.SetOutput(io.Discard)
	if err := f.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			f.PrintUsage(stdout)
			return nil
		}
		f.PrintUsage(stderr)
		return err
	}
	renderer, err := f.Renderer(stdout)
	if err != nil {
		return err
	}
	logger := f.Logger(stderr)
	a := &app{
		flags:    f,
		logger:   logger,
		decoder:  ticket.NewDecoder(f.DecoderOptions(logger)...),
		renderer: renderer,
	}
	if f.CheckKeys {
		// Key checks need node IDs in their decodable form
		a.keyParser = ticket.NewDecoder(ticket.WithLogger(logger))
	}
	inputs := f.Flagset.Args()
	if len(inputs) == 0 {
		inputs, err = readLines(stdin)
		if err != nil {
			return err
		}
	}
	total := 0
	failed := 0
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		total++
		ok, err := a.handle(input)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tickets failed", failed, total)
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var ret []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for scanner.Scan() {
		ret = append(ret, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tickets: %w", err)
	}
	return ret, nil
}

// handle decodes and renders a single ticket. It returns false if the ticket
// was invalid or failed a requested check
func (a *app) handle(input string) (bool, error) {
	tk, err := a.decoder.Parse(input)
	if err != nil {
		a.logger.Debug("invalid ticket", "error", err)
		return false, a.renderer.Invalid(err, a.flags.Debug)
	}
	ok := true
	var annotations []render.Annotation
	if a.flags.Verify != "" {
		if blob, isBlob := tk.(*ticket.BlobTicket); isBlob {
			annotation, verified := a.verifyBlob(blob)
			annotations = append(annotations, annotation)
			ok = ok && verified
		}
	}
	if a.keyParser != nil {
		keyAnnotations, valid := a.checkKeys(input)
		annotations = append(annotations, keyAnnotations...)
		ok = ok && valid
	}
	return ok, a.renderer.Ticket(tk, annotations...)
}

func (a *app) verifyBlob(blob *ticket.BlobTicket) (render.Annotation, bool) {
	ret := render.Annotation{Label: "Verified"}
	file, err := os.Open(a.flags.Verify)
	if err != nil {
		ret.Value = fmt.Sprintf("failed: %s", err)
		return ret, false
	}
	defer file.Close()
	if err := blob.Verify(file); err != nil {
		ret.Value = fmt.Sprintf("failed: %s", err)
		return ret, false
	}
	ret.Value = "ok"
	return ret, true
}

func (a *app) checkKeys(input string) ([]render.Annotation, bool) {
	tk, err := a.keyParser.Parse(input)
	if err != nil {
		// The main decoder is at least as strict, so it has already accepted this input
		return nil, false
	}
	var ret []render.Annotation
	ok := true
	for i, node := range nodeAddrs(tk) {
		annotation := render.Annotation{
			Label: fmt.Sprintf("Node %d key", i+1),
			Value: "ok",
		}
		if err := keycheck.NodeId(node.NodeId); err != nil {
			annotation.Value = err.Error()
			ok = false
		}
		ret = append(ret, annotation)
	}
	return ret, ok
}

func nodeAddrs(tk ticket.Ticket) []ticket.NodeAddr {
	switch v := tk.(type) {
	case *ticket.NodeTicket:
		if v.Node != nil {
			return []ticket.NodeAddr{*v.Node}
		}
	case *ticket.BlobTicket:
		if v.Node != nil {
			return []ticket.NodeAddr{*v.Node}
		}
	case *ticket.DocTicket:
		return v.Nodes
	}
	return nil
}
