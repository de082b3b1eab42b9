// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package chardet_test

import (
	"testing"

	"github.com/antgroup/zeta-graphcore/modules/chardet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripGBK(t *testing.T) {
	original := []byte("hello 世界")
	encoded, err := chardet.EncodeToCharset(original, "gbk")
	require.NoError(t, err)

	decoded, err := chardet.DecodeFromCharset(encoded, "gbk")
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeFromCharsetUnrecognized(t *testing.T) {
	_, err := chardet.DecodeFromCharset([]byte("x"), "not-a-real-charset")
	assert.Error(t, err)
}

func TestEncodeToCharsetUnrecognized(t *testing.T) {
	_, err := chardet.EncodeToCharset([]byte("x"), "not-a-real-charset")
	assert.Error(t, err)
}

func TestNewReaderPassesThroughUnknownCharset(t *testing.T) {
	r := chardet.NewReader(nil, "not-a-real-charset")
	assert.Nil(t, r)
}

func TestEncodingLookupIsCaseInsensitive(t *testing.T) {
	_, err := chardet.EncodeToCharset([]byte("x"), "GBK")
	assert.NoError(t, err)
}
