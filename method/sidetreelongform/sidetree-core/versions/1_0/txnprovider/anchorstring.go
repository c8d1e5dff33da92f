/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package txnprovider downloads and validates the anchor/map/chunk file
// bundle a transaction points at, assembling the anchored operations it
// contains (the in-scope half of the Sidetree batch-processing pipeline;
// writing batches is out of scope).
package txnprovider

import (
	"fmt"
	"strconv"
	"strings"
)

const anchorStringDelimiter = "."

// AnchorData is the parsed form of the anchor string written to the ledger:
// "<numberOfOperations>.<anchorFileURI>".
type AnchorData struct {
	NumberOfOperations int
	AnchorFileURI      string
}

// ParseAnchorData parses anchor string into number of operations and anchor
// file URI.
func ParseAnchorData(anchorString string) (*AnchorData, error) {
	parts := strings.Split(anchorString, anchorStringDelimiter)
	if len(parts) != 2 { //nolint:gomnd
		return nil, fmt.Errorf("parse anchor string[%s]: expecting <number of operations>.<anchor file uri>", anchorString)
	}

	numOfOps, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("parse anchor string[%s]: number of operations is not an integer: %w", anchorString, err)
	}

	return &AnchorData{NumberOfOperations: numOfOps, AnchorFileURI: parts[1]}, nil
}

// String returns the anchor string for this anchor data.
func (ad *AnchorData) String() string {
	return fmt.Sprintf("%d%s%s", ad.NumberOfOperations, anchorStringDelimiter, ad.AnchorFileURI)
}
