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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ticket "github.com/blinklabs-io/goticket"
	"github.com/blinklabs-io/goticket/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func runCapture(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunArgs(t *testing.T) {
	stdout, _, err := runCapture(t, "", "--no-color", test.DocWriteTicket)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Document Ticket\n"))
	assert.Contains(t, stdout, test.DocWriteNodeId)
}

func TestRunLegacyNodeIds(t *testing.T) {
	stdout, _, err := runCapture(t, "", "--no-color", "--legacy-node-ids", test.DocWriteTicket)
	require.NoError(t, err)
	assert.Contains(t, stdout, test.DocWriteNodeIdGrouped)
}

func TestRunStdin(t *testing.T) {
	stdin := test.DocWriteTicket + "\n\n  \nnotaticket\n"
	stdout, _, err := runCapture(t, stdin, "--no-color")
	require.Error(t, err)
	assert.Equal(t, "1 of 2 tickets failed", err.Error())
	assert.Contains(t, stdout, "Document Ticket\n")
	assert.True(t, strings.HasSuffix(stdout, "\nInvalid ticket\n"))
}

func TestRunDebugShowsCause(t *testing.T) {
	stdout, stderr, err := runCapture(t, "", "--no-color", "--debug", "docaaa")
	require.Error(t, err)
	assert.Contains(t, stdout, "Invalid ticket: doc ticket")
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestRunJSON(t *testing.T) {
	stdout, _, err := runCapture(t, "", "-o", "json", test.DocWriteTicket)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"type": "doc"`)
	assert.Contains(t, stdout, `"namespace": "`+test.DocWriteNamespace+`"`)
}

func TestRunBadFlags(t *testing.T) {
	_, stderr, err := runCapture(t, "", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, stderr, "Usage: ticket-info")

	stdout, _, err := runCapture(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--legacy-node-ids")
}

func TestRunVerify(t *testing.T) {
	content := []byte("blob content")
	sum := blake3.Sum256(content)
	input := test.NewBuilder().
		U8(0).
		NodeAddr(test.FixedBytes(ticket.NodeIdLen, 1), "").
		Varint(uint64(ticket.BlobFormatRaw)).
		Raw(sum[:]).
		Ticket("blob")
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	require.NoError(t, os.WriteFile(good, content, 0o600))
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("other"), 0o600))

	stdout, _, err := runCapture(t, "", "--no-color", "--verify", good, input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "  Verified: ok\n")

	stdout, _, err = runCapture(t, "", "--no-color", "--verify", bad, input)
	require.Error(t, err)
	assert.Contains(t, stdout, "  Verified: failed: blob hash mismatch")
}

func TestRunCheckKeys(t *testing.T) {
	stdout, _, err := runCapture(
		t,
		"",
		"--no-color",
		"--check-keys",
		"--legacy-node-ids",
		test.DocWriteTicket,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "  Node 1 key: ok\n")

	// The identity point is a small order key
	identity := make([]byte, ticket.NodeIdLen)
	identity[0] = 1
	input := test.NewBuilder().U8(0).NodeAddr(identity, "").Ticket("node")
	stdout, _, err = runCapture(t, "", "--no-color", "--check-keys", input)
	require.Error(t, err)
	assert.Contains(t, stdout, "small order")
}
