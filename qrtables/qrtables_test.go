package qrtables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeVersionRoundTrip(t *testing.T) {
	for v := 1; v <= 40; v++ {
		size := SizeForVersion(v)
		got, ok := ProvisionalVersion(size)
		require.True(t, ok, "version %d", v)
		assert.Equal(t, v, got)
	}
}

func TestAlignmentPositionsKnownVersions(t *testing.T) {
	assert.Nil(t, AlignmentPositions(1))
	assert.Equal(t, []int{6, 18}, AlignmentPositions(2))
	assert.Equal(t, []int{6, 22, 38}, AlignmentPositions(7))
	assert.Equal(t, []int{6, 26, 46, 66}, AlignmentPositions(14))
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, AlignmentPositions(40))
}

func TestCapacityForKnownVersions(t *testing.T) {
	c := CapacityFor(1, Low)
	assert.Equal(t, 7, c.ECCWords)
	assert.Equal(t, 1, c.NumBlocks)
	assert.Equal(t, 19, c.BlockLen)
	assert.Equal(t, 26, c.TotalBytes)

	c5h := CapacityFor(5, High)
	assert.Equal(t, 22, c5h.ECCWords)
	assert.Equal(t, 4, c5h.NumBlocks)
	assert.Equal(t, 2, c5h.ShortBlocks)
	assert.Equal(t, 11, c5h.BlockLen)
	assert.Equal(t, 134, c5h.TotalBytes)
}

func TestFormatBitsRoundTripAndTolerance(t *testing.T) {
	for level := Low; level <= High; level++ {
		for mask := 0; mask < 8; mask++ {
			field := EncodeFormatBits(level, mask)
			assert.Less(t, field, 1<<15)

			gotLevel, gotMask, ok := DecodeFormatBits(field)
			require.True(t, ok)
			assert.Equal(t, level, gotLevel)
			assert.Equal(t, mask, gotMask)

			for bit := 0; bit < 15; bit++ {
				perturbed := field ^ (1 << bit)
				gotLevel, gotMask, ok := DecodeFormatBits(perturbed)
				require.True(t, ok, "bit %d", bit)
				assert.Equal(t, level, gotLevel, "bit %d", bit)
				assert.Equal(t, mask, gotMask, "bit %d", bit)
			}
		}
	}
}

func TestVersionBitsRoundTrip(t *testing.T) {
	for v := 7; v <= 40; v++ {
		field := EncodeVersionBits(v)
		got, ok := DecodeVersionBits(field)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestAlphanumericBijection(t *testing.T) {
	for i := 0; i < len(AlphanumericChars); i++ {
		idx, ok := AlphanumericIndex(AlphanumericChars[i])
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
	_, ok := AlphanumericIndex('a')
	assert.False(t, ok)
}

func TestZigzagCoverageMatchesCapacity(t *testing.T) {
	for _, v := range []int{1, 2, 5, 7, 14} {
		template := BuildTemplate(v)
		cap := CapacityFor(v, Medium)
		assert.Equal(t, cap.TotalBytes*8, Count(template), "version %d", v)
	}
}

func TestMasksAreDeterministicAndDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i, m := range Masks {
		var bitsStr string
		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				if m(x, y) {
					bitsStr += "1"
				} else {
					bitsStr += "0"
				}
			}
		}
		assert.False(t, seen[bitsStr], "mask %d duplicates an earlier mask", i)
		seen[bitsStr] = true
	}
}
