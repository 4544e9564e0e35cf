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

package ticket_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	ticket "github.com/blinklabs-io/goticket"
	"github.com/blinklabs-io/goticket/base32"
	"github.com/blinklabs-io/goticket/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	testNodeId = test.FixedBytes(ticket.NodeIdLen, 0x10)
	testHash   = test.FixedBytes(ticket.HashLen, 0x80)
)

func testNodeTicket(addrs ...func(*test.Builder)) *test.Builder {
	return test.NewBuilder().U8(0).NodeAddr(testNodeId, "", addrs...)
}

func TestParseDocFixture(t *testing.T) {
	tk, err := ticket.Parse(test.DocWriteTicket)
	require.NoError(t, err)
	doc, ok := tk.(*ticket.DocTicket)
	require.True(t, ok, "expected *DocTicket, got %T", tk)
	assert.Equal(t, ticket.KindDoc, doc.Kind())
	assert.Equal(t, ticket.DocCapabilityWrite, doc.Capability)
	assert.True(t, doc.Writable())
	assert.Equal(t, test.DocWriteNamespace, doc.Namespace)
	require.Len(t, doc.Nodes, 1)
	node := doc.Nodes[0]
	assert.Equal(t, test.DocWriteNodeId, node.NodeId)
	require.True(t, node.HasRelay())
	assert.Equal(t, test.DefaultRelayUrl, *node.Info.RelayUrl)
	assert.Equal(t, test.DocWriteDirectAddresses, node.Info.DirectAddresses)
}

func TestParseDocFixtureLegacyNodeIds(t *testing.T) {
	tk, err := ticket.Parse(test.DocWriteTicket, ticket.WithLegacyNodeIds(true))
	require.NoError(t, err)
	doc := tk.(*ticket.DocTicket)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, test.DocWriteNodeIdGrouped, doc.Nodes[0].NodeId)
	// Only node IDs change
	assert.Equal(t, test.DocWriteNamespace, doc.Namespace)
}

func TestParseDocFixtureBody(t *testing.T) {
	// The fixture is the base32 form of the documented payload
	body := test.DecodeHexString(test.DocWriteTicketHex)
	assert.Equal(t, test.DocWriteTicket, "doc"+base32.Encode(body))
}

func TestParseDocReadCapability(t *testing.T) {
	namespace := test.FixedBytes(ticket.NamespaceLen, 0x40)
	relay := "https://euw1-1.relay.iroh.network./"
	input := test.NewBuilder().
		U8(0).
		Varint(uint64(ticket.DocCapabilityRead)).
		Raw(namespace).
		Varint(2).
		NodeAddr(testNodeId, relay).
		NodeAddr(
			test.FixedBytes(ticket.NodeIdLen, 0x30),
			"",
			test.V6([16]byte{15: 1}, 80),
		).
		Ticket("doc")
	tk, err := ticket.Parse(input)
	require.NoError(t, err)
	doc := tk.(*ticket.DocTicket)
	assert.Equal(t, ticket.DocCapabilityRead, doc.Capability)
	assert.False(t, doc.Writable())
	assert.Equal(t, base32.Encode(namespace), doc.Namespace)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, base32.Encode(testNodeId), doc.Nodes[0].NodeId)
	assert.Equal(t, relay, *doc.Nodes[0].Info.RelayUrl)
	assert.Empty(t, doc.Nodes[0].Info.DirectAddresses)
	assert.False(t, doc.Nodes[1].HasRelay())
	assert.Equal(t, []string{"[::1]:80"}, doc.Nodes[1].Info.DirectAddresses)
}

func TestParseDocNoNodes(t *testing.T) {
	input := test.NewBuilder().
		U8(0).
		Varint(uint64(ticket.DocCapabilityRead)).
		Raw(test.FixedBytes(ticket.NamespaceLen, 0)).
		Varint(0).
		Ticket("doc")
	tk, err := ticket.Parse(input)
	require.NoError(t, err)
	assert.Empty(t, tk.(*ticket.DocTicket).Nodes)
}

func TestParseNodeTicket(t *testing.T) {
	input := testNodeTicket(
		test.V4([4]byte{127, 0, 0, 1}, 1234),
		test.V6([16]byte{0: 0xfe, 1: 0x80, 15: 2}, 4433),
	).Ticket("node")
	tk, err := ticket.Parse(input)
	require.NoError(t, err)
	node, ok := tk.(*ticket.NodeTicket)
	require.True(t, ok, "expected *NodeTicket, got %T", tk)
	assert.Equal(t, ticket.KindNode, node.Kind())
	require.NotNil(t, node.Node)
	assert.Equal(t, base32.Encode(testNodeId), node.Node.NodeId)
	assert.Nil(t, node.Node.Info.RelayUrl)
	assert.Equal(
		t,
		[]string{"127.0.0.1:1234", "[fe80::2]:4433"},
		node.Node.Info.DirectAddresses,
	)
}

func TestParseBlobTicket(t *testing.T) {
	for _, format := range []ticket.BlobFormat{ticket.BlobFormatRaw, ticket.BlobFormatHashSeq} {
		input := test.NewBuilder().
			U8(0).
			NodeAddr(testNodeId, test.DefaultRelayUrl, test.V4([4]byte{10, 0, 0, 1}, 11204)).
			Varint(uint64(format)).
			Raw(testHash).
			Ticket("blob")
		tk, err := ticket.Parse(input)
		require.NoError(t, err)
		blob, ok := tk.(*ticket.BlobTicket)
		require.True(t, ok, "expected *BlobTicket, got %T", tk)
		assert.Equal(t, ticket.KindBlob, blob.Kind())
		assert.Equal(t, format, blob.Format)
		assert.Equal(t, base32.Encode(testHash), blob.Hash)
		assert.Equal(t, test.DefaultRelayUrl, *blob.Node.Info.RelayUrl)
		assert.Equal(t, []string{"10.0.0.1:11204"}, blob.Node.Info.DirectAddresses)
	}
}

func TestParseUppercase(t *testing.T) {
	input := "doc" + strings.ToUpper(strings.TrimPrefix(test.DocWriteTicket, "doc"))
	tk, err := ticket.Parse(input)
	require.NoError(t, err)
	assert.Equal(t, test.DocWriteNamespace, tk.(*ticket.DocTicket).Namespace)
}

func TestParseErrors(t *testing.T) {
	testDefs := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "EmptyInput",
			input:    "",
			expected: ticket.ErrUnknownTicketType,
		},
		{
			name:     "UnknownPrefix",
			input:    "foobarbazqux",
			expected: ticket.ErrUnknownTicketType,
		},
		{
			name:     "UppercasePrefix",
			input:    "NODE" + testNodeTicket().Ticket(""),
			expected: ticket.ErrUnknownTicketType,
		},
		{
			name:     "EmptyBody",
			input:    "node",
			expected: ticket.ErrBufferUnderrun,
		},
		{
			name:     "InvalidCharacter",
			input:    "node1aaa",
			expected: ticket.ErrInvalidEncoding,
		},
		{
			name:     "Padding",
			input:    "nodeaa======",
			expected: ticket.ErrInvalidEncoding,
		},
		{
			name:     "TruncatedDoc",
			input:    "docaaa",
			expected: ticket.ErrBufferUnderrun,
		},
		{
			name:     "UnexpectedVariant",
			input:    test.NewBuilder().U8(1).NodeAddr(testNodeId, "").Ticket("node"),
			expected: ticket.ErrUnexpectedVariant,
		},
		{
			name: "UnknownBlobFormat",
			input: test.NewBuilder().
				U8(0).
				NodeAddr(testNodeId, "").
				Varint(2).
				Raw(testHash).
				Ticket("blob"),
			expected: ticket.ErrUnknownBlobFormat,
		},
		{
			name: "ShortBlobHash",
			input: test.NewBuilder().
				U8(0).
				NodeAddr(testNodeId, "").
				Varint(0).
				Raw(testHash[:31]).
				Ticket("blob"),
			expected: ticket.ErrBufferUnderrun,
		},
		{
			name:     "UnknownCapability",
			input:    test.NewBuilder().U8(0).Varint(2).Ticket("doc"),
			expected: ticket.ErrUnknownCapability,
		},
		{
			name: "UnknownIpVersion",
			input: testNodeTicket(func(b *test.Builder) {
				b.Varint(2).Raw([]byte{1, 2, 3, 4}).Varint(80)
			}).Ticket("node"),
			expected: ticket.ErrUnknownIpVersion,
		},
		{
			name:     "InvalidUtf8Relay",
			input:    test.NewBuilder().U8(0).NodeAddr(testNodeId, "\xff\xfe").Ticket("node"),
			expected: ticket.ErrInvalidUtf8,
		},
		{
			name: "VarintOverflow",
			input: test.NewBuilder().
				U8(0).
				Raw(testNodeId).
				Option(false).
				Raw([]byte{0xff, 0xff, 0xff, 0xff, 0x7f}).
				Ticket("node"),
			expected: ticket.ErrVarintOverflow,
		},
		{
			name: "HugeNodeCount",
			input: test.NewBuilder().
				U8(0).
				Varint(uint64(ticket.DocCapabilityRead)).
				Raw(test.FixedBytes(ticket.NamespaceLen, 0)).
				Varint(0xffffffff).
				Ticket("doc"),
			expected: ticket.ErrBufferUnderrun,
		},
		{
			name: "HugeAddressCount",
			input: test.NewBuilder().
				U8(0).
				Raw(testNodeId).
				Option(false).
				Varint(0xffffffff).
				Ticket("node"),
			expected: ticket.ErrBufferUnderrun,
		},
		{
			name: "MissingAddresses",
			input: test.NewBuilder().
				U8(0).
				Raw(testNodeId).
				Option(false).
				Varint(3).
				IPv4([4]byte{1, 1, 1, 1}, 53).
				Ticket("node"),
			expected: ticket.ErrBufferUnderrun,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			tk, err := ticket.Parse(testDef.input)
			require.Error(t, err)
			assert.Nil(t, tk)
			assert.ErrorIs(t, err, testDef.expected)
		})
	}
}

func TestParseUnknownPrefixEcho(t *testing.T) {
	_, err := ticket.Parse("foobarbazqux")
	var prefixErr ticket.UnknownTicketTypeError
	require.ErrorAs(t, err, &prefixErr)
	assert.Equal(t, "foobarba", prefixErr.Prefix)
}

func TestParseTruncatedFixture(t *testing.T) {
	for n := len("doc"); n < len(test.DocWriteTicket); n++ {
		_, err := ticket.Parse(test.DocWriteTicket[:n])
		if !errors.Is(err, ticket.ErrBufferUnderrun) &&
			!errors.Is(err, ticket.ErrInvalidEncoding) {
			t.Fatalf("length %d: did not get expected error, got: %v", n, err)
		}
	}
}

func TestDecodeErrorLocation(t *testing.T) {
	input := testNodeTicket(func(b *test.Builder) {
		b.Varint(7)
	}).Ticket("node")
	_, err := ticket.Parse(input)
	var decodeErr *ticket.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, ticket.KindNode, decodeErr.Kind)
	assert.Equal(t, "node.info.direct_addresses[0]", decodeErr.Field)
	// variant, node ID, relay option, address count
	assert.Equal(t, 1+ticket.NodeIdLen+1+1, decodeErr.Offset)
	assert.ErrorIs(t, err, ticket.ErrUnknownIpVersion)
	assert.Contains(t, err.Error(), "node ticket")

	_, err = ticket.Parse("node1aaa")
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "body", decodeErr.Field)
	assert.Equal(t, 4, decodeErr.Offset)
}

func TestParseStrict(t *testing.T) {
	testDefs := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "TrailingBytes",
			input:    testNodeTicket().Raw([]byte{0, 0}).Ticket("node"),
			expected: ticket.ErrTrailingBytes,
		},
		{
			name: "NamespaceLength",
			input: test.NewBuilder().
				U8(0).
				Varint(uint64(ticket.DocCapabilityWrite)).
				U8(31).
				Raw(test.FixedBytes(ticket.NamespaceLen, 0)).
				Varint(0).
				Ticket("doc"),
			expected: ticket.ErrInvalidNamespace,
		},
		{
			name:     "PortRange",
			input:    testNodeTicket(test.V4([4]byte{1, 2, 3, 4}, 70000)).Ticket("node"),
			expected: ticket.ErrInvalidPort,
		},
	}
	strict := ticket.NewDecoder(ticket.WithStrict(true))
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			// Accepted by default
			_, err := ticket.Parse(testDef.input)
			require.NoError(t, err)
			_, err = strict.Parse(testDef.input)
			assert.ErrorIs(t, err, testDef.expected)
		})
	}
	_, err := strict.Parse(test.DocWriteTicket)
	require.NoError(t, err)
}

func TestParseOutOfRangePort(t *testing.T) {
	tk, err := ticket.Parse(
		testNodeTicket(test.V4([4]byte{1, 2, 3, 4}, 70000)).Ticket("node"),
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{"1.2.3.4:70000"},
		tk.(*ticket.NodeTicket).Node.Info.DirectAddresses,
	)
}

func TestParseIdempotent(t *testing.T) {
	inputs := []string{
		test.DocWriteTicket,
		testNodeTicket(test.V4([4]byte{192, 168, 1, 1}, 4433)).Ticket("node"),
	}
	for _, input := range inputs {
		first, err := ticket.Parse(input)
		require.NoError(t, err)
		second, err := ticket.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestParseConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t)
	decoder := ticket.NewDecoder()
	expected, err := decoder.Parse(test.DocWriteTicket)
	require.NoError(t, err)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				tk, err := decoder.Parse(test.DocWriteTicket)
				if err != nil {
					errs <- err
					return
				}
				if tk.(*ticket.DocTicket).Namespace != expected.(*ticket.DocTicket).Namespace {
					errs <- errors.New("namespace mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %s", err)
	}
}
