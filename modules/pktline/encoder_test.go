// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pktline_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antgroup/zeta-graphcore/modules/pktline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWritesLengthPrefixedPayload(t *testing.T) {
	var buf bytes.Buffer
	n, err := pktline.Encode(&buf, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "0009hello", buf.String())
}

func TestEncodeRejectsOversizePayload(t *testing.T) {
	var buf bytes.Buffer
	_, err := pktline.Encode(&buf, make([]byte, pktline.MaxPayloadSize+1))
	assert.Error(t, err)
}

func TestEncodeAcceptsMaxPayloadSize(t *testing.T) {
	var buf bytes.Buffer
	_, err := pktline.Encode(&buf, make([]byte, pktline.MaxPayloadSize))
	assert.NoError(t, err)
}

func TestEncodeStringAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	_, err := pktline.EncodeString(&buf, "shallow deadbeef")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(buf.String(), "shallow deadbeef\n"))
}

func TestFlushPktWritesZeroLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pktline.FlushPkt(&buf))
	assert.Equal(t, "0000", buf.String())
}
