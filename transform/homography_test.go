package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHomography(t *testing.T) {
	h, err := ParseHomography("1 0 0; 0 1 0; 0 0 1")
	require.NoError(t, err)
	assert.Equal(t, Identity(), h)

	h, err = ParseHomography("2, 0, 3, 0, 0.5, -1, 0, 0, 1")
	require.NoError(t, err)
	assert.Equal(t, Homography{2, 0, 3, 0, 0.5, -1, 0, 0, 1}, h)

	_, err = ParseHomography("1 2 3 4 5 6 7 8")
	assert.ErrorIs(t, err, ErrBadHomography)

	_, err = ParseHomography("1 2 3 4 5 6 7 8 9 10")
	assert.ErrorIs(t, err, ErrBadHomography)
}

func TestApplyIdentity(t *testing.T) {
	x, y := Identity().Apply(3.5, -2.25)
	assert.Equal(t, 3.5, x)
	assert.Equal(t, -2.25, y)
}

func TestApplyProjective(t *testing.T) {
	h := Homography{1, 0, 0, 0, 1, 0, 0.1, 0, 1}
	x, y := h.Apply(2, 4)
	assert.InDelta(t, 2/1.2, x, 1e-12)
	assert.InDelta(t, 4/1.2, y, 1e-12)
}

func TestInvertRoundTrip(t *testing.T) {
	h := Homography{1.2, 0.1, -3, -0.2, 0.9, 5, 0.001, -0.002, 1}
	inv, err := h.Invert()
	require.NoError(t, err)
	for _, pt := range [][2]float64{{0, 0}, {10, 20}, {-5, 3.5}} {
		fx, fy := h.Apply(pt[0], pt[1])
		bx, by := inv.Apply(fx, fy)
		assert.InDelta(t, pt[0], bx, 1e-9)
		assert.InDelta(t, pt[1], by, 1e-9)
	}
}

func TestInvertSingular(t *testing.T) {
	_, err := Homography{1, 2, 3, 2, 4, 6, 0, 0, 0}.Invert()
	assert.Error(t, err)
}

func TestMulComposes(t *testing.T) {
	a := Homography{2, 0, 1, 0, 2, -1, 0, 0, 1}
	b := Homography{1, 0, 5, 0, 1, 5, 0.01, 0, 1}
	ab := a.Mul(b)
	x, y := b.Apply(3, 4)
	wantX, wantY := a.Apply(x, y)
	gotX, gotY := ab.Apply(3, 4)
	assert.InDelta(t, wantX, gotX, 1e-12)
	assert.InDelta(t, wantY, gotY, 1e-12)
}

func TestFromCorrespondences(t *testing.T) {
	src := [4][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	dst := [4][2]float64{{1, 1}, {6, 0}, {7, 5}, {0, 6}}
	h, err := FromCorrespondences(src, dst)
	require.NoError(t, err)
	for i := range src {
		x, y := h.Apply(src[i][0], src[i][1])
		assert.InDelta(t, dst[i][0], x, 1e-9, "corner %d", i)
		assert.InDelta(t, dst[i][1], y, 1e-9, "corner %d", i)
	}
}
