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

package render

import (
	"fmt"
	"strings"

	ticket "github.com/blinklabs-io/goticket"
)

const noNodeInfoMessage = "This ticket contains no node info."

func (r *Renderer) writeTicketText(t ticket.Ticket, annotations []Annotation) error {
	var sb strings.Builder
	switch v := t.(type) {
	case *ticket.NodeTicket:
		r.heading(&sb, "Node Ticket")
		r.nodeOrFallback(&sb, v.Node)
	case *ticket.BlobTicket:
		r.heading(&sb, "Blob Ticket")
		r.field(&sb, 1, "Hash", v.Hash)
		r.field(&sb, 1, "Format", v.Format.String())
		r.nodeOrFallback(&sb, v.Node)
	case *ticket.DocTicket:
		r.heading(&sb, "Document Ticket")
		r.field(&sb, 1, "Document ID", v.Namespace)
		r.field(&sb, 1, "Capability", v.Capability.String())
		plural := "s"
		if len(v.Nodes) == 1 {
			plural = ""
		}
		fmt.Fprintf(&sb, "  %s\n", r.styles.heading.Render(fmt.Sprintf("%d Node%s:", len(v.Nodes), plural)))
		for i := range v.Nodes {
			r.node(&sb, &v.Nodes[i])
		}
	default:
		return fmt.Errorf("unsupported ticket type: %T", t)
	}
	for _, annotation := range annotations {
		r.field(&sb, 1, annotation.Label, annotation.Value)
	}
	r.separate()
	_, err := fmt.Fprint(r.w, sb.String())
	return err
}

func (r *Renderer) heading(sb *strings.Builder, text string) {
	sb.WriteString(r.styles.heading.Render(text))
	sb.WriteString("\n")
}

func (r *Renderer) field(sb *strings.Builder, depth int, label string, value string) {
	fmt.Fprintf(
		sb,
		"%s%s %s\n",
		strings.Repeat("  ", depth),
		r.styles.label.Render(label+":"),
		value,
	)
}

func (r *Renderer) nodeOrFallback(sb *strings.Builder, node *ticket.NodeAddr) {
	if node == nil {
		sb.WriteString("  " + noNodeInfoMessage + "\n")
		return
	}
	r.node(sb, node)
}

func (r *Renderer) node(sb *strings.Builder, node *ticket.NodeAddr) {
	fmt.Fprintf(sb, "  %s\n", r.styles.label.Render("Node Info"))
	r.field(sb, 2, "Node ID", node.NodeId)
	relay := "none"
	if node.HasRelay() {
		relay = *node.Info.RelayUrl
		if known := ticket.RelayByUrl(relay); known.Known() {
			relay = fmt.Sprintf("%s (%s, %s)", relay, known.Name, known.Region)
		}
	}
	r.field(sb, 2, "Relay URL", relay)
	if len(node.Info.DirectAddresses) == 0 {
		r.field(sb, 2, "Direct Addresses", "none")
		return
	}
	fmt.Fprintf(sb, "    %s\n", r.styles.label.Render("Direct Addresses:"))
	for _, addr := range node.Info.DirectAddresses {
		fmt.Fprintf(sb, "      %s\n", addr)
	}
}
