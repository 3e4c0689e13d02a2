// SPDX-License-Identifier: Apache-2.0

package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func compare(a, b string) float64 {
	return similarity(runes(normalizeForComparison(a)), runes(normalizeForComparison(b)))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, compare("[G]Holy  Holy", "holy holy"), 1e-9)
	assert.Less(t, compare("Amazing grace", "Through many dangers"), DefaultSimilarityThreshold)
	assert.InDelta(t, 1.0, compare("", ""), 1e-9)
	assert.GreaterOrEqual(t, compare("[C(add9)]How great is our God", "how great is our god"), DefaultSimilarityThreshold)
}
