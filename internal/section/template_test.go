package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameStraights(t *testing.T, want, got []Straight, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].N1.X, got[i].N1.X, delta, "element %d node 1 x", i)
		assert.InDelta(t, want[i].N1.Y, got[i].N1.Y, delta, "element %d node 1 y", i)
		assert.InDelta(t, want[i].N2.X, got[i].N2.X, delta, "element %d node 2 x", i)
		assert.InDelta(t, want[i].N2.Y, got[i].N2.Y, delta, "element %d node 2 y", i)
		assert.Equal(t, want[i].T, got[i].T)
	}
}

func zSection(t *testing.T) *Section {
	t.Helper()
	s := DefaultSection()
	require.NoError(t, s.SwitchCZ())
	return s
}

func TestCenterlineRoundTrip(t *testing.T) {
	for name, z := range map[string]bool{"C": false, "Z": true} {
		t.Run(name, func(t *testing.T) {
			s := DefaultSection()
			if z {
				require.NoError(t, s.SwitchCZ())
			}
			original := append([]Straight(nil), s.Straights...)

			require.NoError(t, s.ConvertToOutToOut(z, DefaultThickness))
			assert.Less(t, s.Properties().Area, DefaultSection().Properties().Area)

			require.NoError(t, s.ConvertToCenterline(z, DefaultThickness))
			assertSameStraights(t, original, s.Straights, 1e-6)
		})
	}
}

func TestRoundedCenterlineRoundTrip(t *testing.T) {
	for name, z := range map[string]bool{"C": false, "Z": true} {
		t.Run(name, func(t *testing.T) {
			s := DefaultSection()
			if z {
				require.NoError(t, s.SwitchCZ())
			}
			sharp := append([]Straight(nil), s.Straights...)

			require.NoError(t, s.AddRoundedCorners(0.0938))
			require.NoError(t, s.ConvertToOutToOut(z, DefaultThickness))
			assert.Len(t, s.Arcs, 4)
			require.NoError(t, s.ConvertToCenterline(z, DefaultThickness))
			assert.Len(t, s.Arcs, 4)

			require.NoError(t, s.RemoveRoundedCorners())
			assertSameStraights(t, sharp, s.Straights, 1e-6)
		})
	}
}

func TestOutToOutOffsets(t *testing.T) {
	s := DefaultSection()
	require.NoError(t, s.ConvertToOutToOut(false, DefaultThickness))

	st := s.Straights
	tt := DefaultThickness
	assert.InDelta(t, DefaultWebDepth-tt, st[slotWeb].N2.Y, eps)
	assert.InDelta(t, DefaultFlangeWidth-tt, st[slotBottomFlange].N2.X, eps)
	assert.InDelta(t, DefaultLipLength-tt/2, st[slotBottomLip].N2.Y, eps)
	assert.InDelta(t, DefaultWebDepth-DefaultLipLength-tt/2, st[slotTopLip].N2.Y, eps)
	assert.Equal(t, Node{0, 0}, st[slotWeb].N1)
}

func TestRoundedCorners(t *testing.T) {
	const radius = 0.0938
	s := DefaultSection()
	sharp := append([]Straight(nil), s.Straights...)
	sharpArea := s.Properties().Area

	require.NoError(t, s.AddRoundedCorners(radius))
	assert.Len(t, s.Arcs, 4)
	assert.Len(t, s.Straights, 5)
	assert.Less(t, s.Properties().Area, sharpArea)
	assert.False(t, s.IsClosed())
	assert.Len(t, s.EndNodes(), 2)
	for _, a := range s.Arcs {
		assert.InDelta(t, radius, math.Abs(a.Radius), eps)
	}

	t.Run("adding again is a no-op", func(t *testing.T) {
		c := s.Clone()
		require.NoError(t, c.AddRoundedCorners(radius))
		assert.Len(t, c.Arcs, 4)
	})

	require.NoError(t, s.RemoveRoundedCorners())
	assert.Empty(t, s.Arcs)
	assertSameStraights(t, sharp, s.Straights, 1e-6)
	assert.InDelta(t, sharpArea, s.Properties().Area, 1e-9)
}

func TestRoundedZSection(t *testing.T) {
	s := zSection(t)
	require.NoError(t, s.AddRoundedCorners(0.0938))
	assert.Len(t, s.Arcs, 4)

	p := s.Properties()
	// A Z section is point symmetric, so the shear center sits on the centroid.
	assert.InDelta(t, p.Centroid.X, p.ShearCenter.X, 1e-9)
	assert.InDelta(t, p.Centroid.Y, p.ShearCenter.Y, 1e-9)
}

func TestAddRoundedCornersRejectsBadRadius(t *testing.T) {
	s := DefaultSection()
	before := s.Clone()

	assert.ErrorIs(t, s.AddRoundedCorners(0), ErrDegenerateGeometry)
	assert.ErrorIs(t, s.AddRoundedCorners(5), ErrDegenerateGeometry)
	assert.Equal(t, before.Straights, s.Straights)
	assert.Empty(t, s.Arcs)
}

func TestUpdateWebDepth(t *testing.T) {
	s := DefaultSection()
	require.NoError(t, s.AddRoundedCorners(0.0938))

	require.NoError(t, s.UpdateWebDepth(3.625, DefaultLipLength))
	assert.Len(t, s.Arcs, 4)
	assert.InDelta(t, 3.625/2, s.Properties().Centroid.Y, 1e-9)

	require.NoError(t, s.RemoveRoundedCorners())
	st := s.Straights
	assert.InDelta(t, 3.625, st[slotWeb].N2.Y, 1e-6)
	assert.InDelta(t, 3.625, st[slotTopFlange].N1.Y, 1e-6)
	assert.InDelta(t, 3.625-DefaultLipLength, st[slotTopLip].N2.Y, 1e-6)
}

func TestUpdateFlangeWidthKeepsZ(t *testing.T) {
	s := zSection(t)
	require.NoError(t, s.UpdateFlangeWidth(1.625, DefaultWebDepth, 0.5))

	st := s.Straights
	assert.InDelta(t, -1.625, st[slotBottomFlange].N2.X, eps)
	assert.InDelta(t, 1.625, st[slotTopFlange].N2.X, eps)
	assert.InDelta(t, 0.5, st[slotBottomLip].N2.Y, eps)
	assert.InDelta(t, DefaultWebDepth-0.5, st[slotTopLip].N2.Y, eps)
}

func TestTemplateOperatorsRejectOtherSections(t *testing.T) {
	s := squareTube(t)
	before := s.Clone()

	assert.ErrorIs(t, s.UpdateWebDepth(3, 0.5), ErrNotTemplate)
	assert.ErrorIs(t, s.UpdateFlangeWidth(2, 3, 0.5), ErrNotTemplate)
	assert.ErrorIs(t, s.ConvertToOutToOut(false, 0.1), ErrNotTemplate)
	assert.ErrorIs(t, s.SwitchCZ(), ErrNotTemplate)
	assert.Equal(t, before.Straights, s.Straights)
	assert.Equal(t, before.Properties(), s.Properties())
}

func TestSwitchCZ(t *testing.T) {
	s := DefaultSection()
	original := append([]Straight(nil), s.Straights...)

	require.NoError(t, s.SwitchCZ())
	assert.InDelta(t, -DefaultFlangeWidth, s.Straights[slotBottomFlange].N2.X, eps)
	assert.InDelta(t, DefaultFlangeWidth, s.Straights[slotTopFlange].N2.X, eps)
	assert.NotZero(t, s.Properties().Ixy)
	assert.InDelta(t, 0, s.Properties().Centroid.X, 1e-9)

	require.NoError(t, s.SwitchCZ())
	assert.Equal(t, original, s.Straights)
	assert.Zero(t, s.Properties().Ixy)
}

func TestSwitchCZWithLongLips(t *testing.T) {
	s := DefaultSection()
	require.NoError(t, s.UpdateFlangeWidth(3.5, DefaultWebDepth, 1))
	require.NoError(t, s.SwitchCZ())

	st := s.Straights
	assert.Equal(t, Node{-3.5, 0}, st[slotBottomFlange].N2)
	assert.Equal(t, Node{-3.5, 0}, st[slotBottomLip].N1)
	assert.Equal(t, Node{-3.5, 1}, st[slotBottomLip].N2)
	assert.Equal(t, Node{3.5, DefaultWebDepth}, st[slotTopLip].N1)
	assert.Equal(t, Node{3.5, DefaultWebDepth - 1}, st[slotTopLip].N2)

	p := s.Properties()
	assert.InDelta(t, 0, p.Centroid.X, 1e-9)
	assert.InDelta(t, p.Centroid.X, p.ShearCenter.X, 1e-9)
	assert.InDelta(t, p.Centroid.Y, p.ShearCenter.Y, 1e-9)
}

func TestSwitchCZKeepsFillets(t *testing.T) {
	s := DefaultSection()
	require.NoError(t, s.AddRoundedCorners(0.0938))
	area := s.Properties().Area

	require.NoError(t, s.SwitchCZ())
	assert.Len(t, s.Arcs, 4)
	assert.InDelta(t, area, s.Properties().Area, 1e-12)
	assert.NotZero(t, s.Properties().Ixy)
}

func TestMoveNode(t *testing.T) {
	s := DefaultSection()
	area := s.Properties().Area

	from := Node{DefaultFlangeWidth, DefaultLipLength}
	to := Node{DefaultFlangeWidth, 0.3}
	require.NoError(t, s.MoveNode(from, to))

	assert.Equal(t, to, s.Straights[slotBottomLip].N2)
	assert.InDelta(t, area+DefaultThickness*(0.3-DefaultLipLength), s.Properties().Area, 1e-12)

	t.Run("collapsing an element is rejected", func(t *testing.T) {
		before := s.Clone()
		err := s.MoveNode(to, Node{DefaultFlangeWidth, 0})
		assert.ErrorIs(t, err, ErrDegenerateGeometry)
		assert.Equal(t, before.Straights, s.Straights)
	})
}

func TestSetAllThicknesses(t *testing.T) {
	s := DefaultSection()
	require.NoError(t, s.AddRoundedCorners(0.0938))
	area := s.Properties().Area

	require.NoError(t, s.SetAllThicknesses(2*DefaultThickness))
	assert.InDelta(t, 2*area, s.Properties().Area, 1e-12)
	for _, e := range s.Elements() {
		assert.Equal(t, 2*DefaultThickness, e.Thickness())
	}

	assert.ErrorIs(t, s.SetAllThicknesses(0), ErrDegenerateGeometry)
	assert.InDelta(t, 2*area, s.Properties().Area, 1e-12)
}
