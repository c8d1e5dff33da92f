/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package txnprovider

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipCompressionAlgorithm is the only compression algorithm this provider
// currently supports.
const gzipCompressionAlgorithm = "GZIP"

// CompressionProvider compresses and decompresses CAS file content.
type CompressionProvider struct {
	maxDecompressionFactor uint
}

// NewCompressionProvider returns a CompressionProvider that rejects
// decompressed output more than maxDecompressionFactor times the compressed
// input size, guarding against decompression-bomb payloads.
func NewCompressionProvider(maxDecompressionFactor uint) *CompressionProvider {
	return &CompressionProvider{maxDecompressionFactor: maxDecompressionFactor}
}

// Compress compresses data using alg.
func (p *CompressionProvider) Compress(alg string, data []byte) ([]byte, error) {
	if alg != gzipCompressionAlgorithm {
		return nil, fmt.Errorf("compression algorithm '%s' not supported", alg)
	}

	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses data using alg, capping decompressed size at
// maxDecompressionFactor times len(data).
func (p *CompressionProvider) Decompress(alg string, data []byte) ([]byte, error) {
	if alg != gzipCompressionAlgorithm {
		return nil, fmt.Errorf("compression algorithm '%s' not supported", alg)
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close() //nolint:errcheck

	factor := p.maxDecompressionFactor
	if factor == 0 {
		factor = 1
	}

	maxSize := int64(len(data)) * int64(factor)

	limited := io.LimitReader(r, maxSize+1)

	decompressed, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	if int64(len(decompressed)) > maxSize {
		return nil, fmt.Errorf("decompressed content exceeds maximum decompression factor %d", factor)
	}

	return decompressed, nil
}
