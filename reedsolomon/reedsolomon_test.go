package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeQR(t *testing.T) {
	field := QRCodeField256

	dataSize := 10
	ecSize := 7
	toEncode := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		toEncode[i] = i + 1
	}

	NewEncoder(field).Encode(toEncode, ecSize)
	for i := 0; i < dataSize; i++ {
		assert.Equal(t, i+1, toEncode[i])
	}

	received := make([]int, len(toEncode))
	copy(received, toEncode)
	received[0] = 0
	received[3] = 200
	received[6] = 100

	corrected, err := NewDecoder(field).Decode(received, ecSize)
	require.NoError(t, err)
	assert.Equal(t, 3, corrected)
	assert.Equal(t, toEncode, received)
}

func TestDecodeNoErrors(t *testing.T) {
	field := QRCodeField256
	dataSize, ecSize := 5, 4
	toEncode := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		toEncode[i] = (i + 1) * 10
	}
	NewEncoder(field).Encode(toEncode, ecSize)

	corrected, err := NewDecoder(field).Decode(toEncode, ecSize)
	require.NoError(t, err)
	assert.Equal(t, 0, corrected)
}

func TestDecodeTooManyErrorsFails(t *testing.T) {
	field := QRCodeField256
	dataSize, ecSize := 5, 4
	toEncode := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		toEncode[i] = (i + 1) * 10
	}
	NewEncoder(field).Encode(toEncode, ecSize)

	received := make([]int, len(toEncode))
	copy(received, toEncode)
	received[0], received[1], received[2] = 0, 0, 0 // 3 errors, ecSize/2 = 2

	_, err := NewDecoder(field).Decode(received, ecSize)
	assert.Error(t, err)
}

// TestRoundTripUpToHalfECC exercises the spec's RS round-trip property: any
// data, encoded then corrupted in up to floor(ecSize/2) byte positions,
// decodes back to the original.
func TestRoundTripUpToHalfECC(t *testing.T) {
	field := QRCodeField256
	dataSize, ecSize := 16, 10
	maxCorrectable := ecSize / 2

	original := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		original[i] = (i*37 + 11) % 256
	}
	NewEncoder(field).Encode(original, ecSize)

	for numErrors := 0; numErrors <= maxCorrectable; numErrors++ {
		received := make([]int, len(original))
		copy(received, original)
		for i := 0; i < numErrors; i++ {
			pos := i * 2
			received[pos] = (received[pos] + 123) % 256
		}
		_, err := NewDecoder(field).Decode(received, ecSize)
		require.NoError(t, err, "numErrors=%d", numErrors)
		assert.Equal(t, original, received, "numErrors=%d", numErrors)
	}
}

func TestGaloisFieldClosureAndInverse(t *testing.T) {
	field := QRCodeField256
	assert.Equal(t, 256, field.Size())
	assert.Equal(t, 0, field.GeneratorBase())

	for a := 1; a < 256; a++ {
		inv := field.Inverse(a)
		assert.Equal(t, 1, field.Multiply(a, inv), "a=%d", a)
	}

	assert.Equal(t, 0, AddOrSubtract(42, 42))
	assert.Equal(t, 0, field.Multiply(0, 100))
	assert.Equal(t, 0, field.Multiply(100, 0))
}

func TestGenericGFPoly(t *testing.T) {
	field := QRCodeField256

	assert.True(t, field.Zero().IsZero())
	assert.False(t, field.One().IsZero())
	assert.Equal(t, 0, field.One().Degree())

	p := newGenericGFPoly(field, []int{2, 3})
	assert.Equal(t, 3, p.EvaluateAt(0))

	doubled := p.MultiplyScalar(1)
	assert.Same(t, p, doubled)
}

func TestAddPolyIdentity(t *testing.T) {
	field := QRCodeField256
	p := newGenericGFPoly(field, []int{5, 9, 2})
	sum := p.AddOrSubtractPoly(field.Zero())
	assert.Equal(t, p.Coefficients(), sum.Coefficients())

	product := p.MultiplyPoly(field.One())
	assert.Equal(t, p.Coefficients(), product.Coefficients())
}
