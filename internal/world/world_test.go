package world

import (
	"math"
	"testing"
	"time"

	"github.com/virefract/tracer/internal/geom"
	"github.com/virefract/tracer/internal/light"
	"github.com/virefract/tracer/internal/material"
	"github.com/virefract/tracer/internal/pattern"
	"github.com/virefract/tracer/internal/shape"
	"github.com/virefract/tracer/internal/xs"
)

func TestIntersectDefaultWorld(t *testing.T) {
	w := Default()
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 0, 1))
	allXS, err := w.IntersectWorld(r)
	if err != nil {
		t.Fatalf("IntersectWorld() error = %v", err)
	}
	if len(allXS) != 4 {
		t.Fatalf("len(IntersectWorld()) = %d, want 4", len(allXS))
	}
	want := []float64{4, 4.5, 5.5, 6}
	for i, w := range want {
		if allXS[i].T != w {
			t.Errorf("xs[%d].T = %v, want %v", i, allXS[i].T, w)
		}
	}
}

func TestShadeHitDefaultWorld(t *testing.T) {
	w := Default()
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 0, 1))
	allXS, err := w.IntersectWorld(r)
	if err != nil {
		t.Fatalf("IntersectWorld() error = %v", err)
	}
	hit, _ := xs.Hit(allXS)
	comps, err := PrepareComputations(hit, r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.ShadeHit(comps, MaxDepth)
	if err != nil {
		t.Fatalf("ShadeHit() error = %v", err)
	}
	want := geom.NewColor(0.38066, 0.47583, 0.28550)
	if !got.Equal(want) {
		t.Errorf("ShadeHit() = %v, want %v", got, want)
	}
}

func TestShadeHitFromInside(t *testing.T) {
	w := Default()
	w.Lights = []light.PointLight{light.NewPointLight(geom.Point(0, 0.25, 0), geom.White)}
	r := geom.NewRay(geom.Point(0, 0, 0), geom.Vector(0, 0, 1))
	allXS, err := w.IntersectWorld(r)
	if err != nil {
		t.Fatalf("IntersectWorld() error = %v", err)
	}
	hit, _ := xs.Hit(allXS)
	comps, err := PrepareComputations(hit, r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.ShadeHit(comps, MaxDepth)
	if err != nil {
		t.Fatalf("ShadeHit() error = %v", err)
	}
	want := geom.NewColor(0.90498, 0.90498, 0.90498)
	if !got.Equal(want) {
		t.Errorf("ShadeHit() = %v, want %v", got, want)
	}
}

func TestColorAtMiss(t *testing.T) {
	w := Default()
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 1, 0))
	got, err := w.ColorAt(r, MaxDepth)
	if err != nil {
		t.Fatalf("ColorAt() error = %v", err)
	}
	if !got.Equal(geom.Black) {
		t.Errorf("ColorAt() = %v, want black", got)
	}
}

func TestColorAtHit(t *testing.T) {
	w := Default()
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 0, 1))
	got, err := w.ColorAt(r, MaxDepth)
	if err != nil {
		t.Fatalf("ColorAt() error = %v", err)
	}
	want := geom.NewColor(0.38066, 0.47583, 0.28550)
	if !got.Equal(want) {
		t.Errorf("ColorAt() = %v, want %v", got, want)
	}
}

func TestIsShadowedWhenObjectBetweenPointAndLight(t *testing.T) {
	w := Default()
	shadowed, err := w.IsShadowedForLight(geom.Point(10, -10, 10), w.Lights[0])
	if err != nil {
		t.Fatalf("IsShadowedForLight() error = %v", err)
	}
	if !shadowed {
		t.Errorf("IsShadowedForLight() = false, want true")
	}
}

func TestIsShadowedWhenNothingBlocks(t *testing.T) {
	w := Default()
	shadowed, err := w.IsShadowedForLight(geom.Point(0, 10, 0), w.Lights[0])
	if err != nil {
		t.Fatalf("IsShadowedForLight() error = %v", err)
	}
	if shadowed {
		t.Errorf("IsShadowedForLight() = true, want false")
	}
}

func TestShadeHitGivesAmbientOnlyInShadow(t *testing.T) {
	w := New()
	w.Lights = []light.PointLight{light.NewPointLight(geom.Point(0, 0, -10), geom.White)}
	s1 := shape.NewSphere()
	s2 := shape.NewSphere()
	s2.SetTransform(geom.Translation(0, 0, 10))
	w.Objects = []*shape.Object{s1, s2}

	r := geom.NewRay(geom.Point(0, 0, 5), geom.Vector(0, 0, 1))
	allXS, err := w.IntersectWorld(r)
	if err != nil {
		t.Fatalf("IntersectWorld() error = %v", err)
	}
	hit, ok := xs.Hit(allXS)
	if !ok {
		t.Fatalf("expected a hit")
	}
	comps, err := PrepareComputations(hit, r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.ShadeHit(comps, MaxDepth)
	if err != nil {
		t.Fatalf("ShadeHit() error = %v", err)
	}
	want := geom.NewColor(0.1, 0.1, 0.1)
	if !got.Equal(want) {
		t.Errorf("ShadeHit() in shadow = %v, want %v", got, want)
	}
}

func TestOverPointIsAboveSurface(t *testing.T) {
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 0, 1))
	s := shape.NewSphere()
	s.SetTransform(geom.Translation(0, 0, 1))
	i := xs.Intersection{T: 5, Object: s}
	comps, err := PrepareComputations(i, r, []xs.Intersection{i})
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	if comps.OverPoint.Z >= -computationEpsilon/2 || comps.Point.Z <= comps.OverPoint.Z {
		t.Errorf("OverPoint = %v, Point = %v, want OverPoint.Z < Point.Z and above the epsilon threshold", comps.OverPoint, comps.Point)
	}
}

func TestPrepareComputationsN1N2Table(t *testing.T) {
	a := shape.NewSphere()
	a.Material = material.Glass()
	a.Material.RefractiveIndex = 1.5
	a.SetTransform(geom.Scaling(2, 2, 2))

	b := shape.NewSphere()
	b.Material = material.Glass()
	b.Material.RefractiveIndex = 2.0
	b.SetTransform(geom.Translation(0, 0, -0.25))

	c := shape.NewSphere()
	c.Material = material.Glass()
	c.Material.RefractiveIndex = 2.5
	c.SetTransform(geom.Translation(0, 0, 0.25))

	r := geom.NewRay(geom.Point(0, 0, -4), geom.Vector(0, 0, 1))
	allXS := []xs.Intersection{
		{T: 2, Object: a},
		{T: 2.75, Object: b},
		{T: 3.25, Object: c},
		{T: 4.75, Object: b},
		{T: 5.25, Object: c},
		{T: 6, Object: a},
	}

	want := [][2]float64{
		{1.0, 1.5},
		{1.5, 2.0},
		{2.0, 2.5},
		{2.5, 2.5},
		{2.5, 1.5},
		{1.5, 1.0},
	}

	for i, x := range allXS {
		comps, err := PrepareComputations(x, r, allXS)
		if err != nil {
			t.Fatalf("PrepareComputations(%d) error = %v", i, err)
		}
		if comps.N1 != want[i][0] || comps.N2 != want[i][1] {
			t.Errorf("xs[%d]: n1=%v n2=%v, want %v", i, comps.N1, comps.N2, want[i])
		}
	}
}

func TestRefractedColorOpaqueMaterialIsBlack(t *testing.T) {
	w := Default()
	shapeObj := w.Objects[0]
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 0, 1))
	allXS := []xs.Intersection{{T: 4, Object: shapeObj}, {T: 6, Object: shapeObj}}
	comps, err := PrepareComputations(allXS[0], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.RefractedColor(comps, MaxDepth)
	if err != nil {
		t.Fatalf("RefractedColor() error = %v", err)
	}
	if !got.Equal(geom.Black) {
		t.Errorf("RefractedColor() = %v, want black", got)
	}
}

func TestRefractedColorAtMaxDepthIsBlack(t *testing.T) {
	w := Default()
	shapeObj := w.Objects[0]
	shapeObj.Material.Transparency = 1.0
	shapeObj.Material.RefractiveIndex = 1.5
	r := geom.NewRay(geom.Point(0, 0, -5), geom.Vector(0, 0, 1))
	allXS := []xs.Intersection{{T: 4, Object: shapeObj}, {T: 6, Object: shapeObj}}
	comps, err := PrepareComputations(allXS[0], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.RefractedColor(comps, 0)
	if err != nil {
		t.Fatalf("RefractedColor() error = %v", err)
	}
	if !got.Equal(geom.Black) {
		t.Errorf("RefractedColor() = %v, want black", got)
	}
}

func TestRefractedColorTotalInternalReflectionIsBlack(t *testing.T) {
	w := Default()
	shapeObj := w.Objects[0]
	shapeObj.Material.Transparency = 1.0
	shapeObj.Material.RefractiveIndex = 1.5
	r := geom.NewRay(geom.Point(0, 0, math.Sqrt2/2), geom.Vector(0, 1, 0))
	allXS := []xs.Intersection{{T: -math.Sqrt2 / 2, Object: shapeObj}, {T: math.Sqrt2 / 2, Object: shapeObj}}
	comps, err := PrepareComputations(allXS[1], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.RefractedColor(comps, MaxDepth)
	if err != nil {
		t.Fatalf("RefractedColor() error = %v", err)
	}
	if !got.Equal(geom.Black) {
		t.Errorf("RefractedColor() = %v, want black", got)
	}
}

func TestRefractedColorWithARefractedRay(t *testing.T) {
	w := Default()
	a := w.Objects[0]
	a.Material.Ambient = 1.0
	testPattern := pattern.NewTest()
	a.Material.Pattern = &testPattern

	b := w.Objects[1]
	b.Material.Transparency = 1.0
	b.Material.RefractiveIndex = 1.5

	r := geom.NewRay(geom.Point(0, 0, 0.1), geom.Vector(0, 1, 0))
	allXS := []xs.Intersection{
		{T: -0.9899, Object: a},
		{T: -0.4899, Object: b},
		{T: 0.4899, Object: b},
		{T: 0.9899, Object: a},
	}
	comps, err := PrepareComputations(allXS[2], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.RefractedColor(comps, MaxDepth)
	if err != nil {
		t.Fatalf("RefractedColor() error = %v", err)
	}
	want := geom.NewColor(0, 0.99888, 0.04722)
	if !got.Equal(want) {
		t.Errorf("RefractedColor() = %v, want %v", got, want)
	}
}

func TestShadeHitWithTransparentMaterial(t *testing.T) {
	w := Default()

	floor := shape.NewPlane()
	floor.SetTransform(geom.Translation(0, -1, 0))
	floor.Material.Transparency = 0.5
	floor.Material.RefractiveIndex = 1.5
	w.Objects = append(w.Objects, floor)

	ball := shape.NewSphere()
	ball.Material.Color = geom.NewColor(1, 0, 0)
	ball.Material.Ambient = 0.5
	ball.SetTransform(geom.Translation(0, -3.5, -0.5))
	w.Objects = append(w.Objects, ball)

	r := geom.NewRay(geom.Point(0, 0, -3), geom.Vector(0, -math.Sqrt2/2, math.Sqrt2/2))
	allXS := []xs.Intersection{{T: math.Sqrt2, Object: floor}}
	comps, err := PrepareComputations(allXS[0], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.ShadeHit(comps, MaxDepth)
	if err != nil {
		t.Fatalf("ShadeHit() error = %v", err)
	}
	want := geom.NewColor(0.93642, 0.68642, 0.68642)
	if !got.Equal(want) {
		t.Errorf("ShadeHit() = %v, want %v", got, want)
	}
}

func TestSchlickTotalInternalReflection(t *testing.T) {
	s := shape.NewSphere()
	s.Material = material.Glass()
	r := geom.NewRay(geom.Point(0, 0, math.Sqrt2/2), geom.Vector(0, 1, 0))
	allXS := []xs.Intersection{{T: -math.Sqrt2 / 2, Object: s}, {T: math.Sqrt2 / 2, Object: s}}
	comps, err := PrepareComputations(allXS[1], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	if got := Schlick(comps); got != 1.0 {
		t.Errorf("Schlick() = %v, want 1.0", got)
	}
}

func TestSchlickPerpendicularViewingAngle(t *testing.T) {
	s := shape.NewSphere()
	s.Material = material.Glass()
	r := geom.NewRay(geom.Point(0, 0, 0), geom.Vector(0, 1, 0))
	allXS := []xs.Intersection{{T: -1, Object: s}, {T: 1, Object: s}}
	comps, err := PrepareComputations(allXS[1], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	if got, want := Schlick(comps), 0.04; math.Abs(got-want) > 1e-5 {
		t.Errorf("Schlick() = %v, want ~%v", got, want)
	}
}

func TestSchlickSmallAngleWithN2GreaterThanN1(t *testing.T) {
	s := shape.NewSphere()
	s.Material = material.Glass()
	r := geom.NewRay(geom.Point(0, 0.99, -2), geom.Vector(0, 0, 1))
	allXS := []xs.Intersection{{T: 1.8589, Object: s}}
	comps, err := PrepareComputations(allXS[0], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	if got, want := Schlick(comps), 0.48873; math.Abs(got-want) > 1e-5 {
		t.Errorf("Schlick() = %v, want ~%v", got, want)
	}
}

func TestShadeHitWithReflectiveTransparentMaterial(t *testing.T) {
	w := Default()

	r := geom.NewRay(geom.Point(0, 0, -3), geom.Vector(0, -math.Sqrt2/2, math.Sqrt2/2))

	floor := shape.NewPlane()
	floor.SetTransform(geom.Translation(0, -1, 0))
	floor.Material.Reflective = 0.5
	floor.Material.RefractiveIndex = 1.5
	floor.Material.Transparency = 0.5
	w.Objects = append(w.Objects, floor)

	ball := shape.NewSphere()
	ball.Material.Color = geom.NewColor(1, 0, 0)
	ball.Material.Ambient = 0.5
	ball.SetTransform(geom.Translation(0, -3.5, -0.5))
	w.Objects = append(w.Objects, ball)

	allXS := []xs.Intersection{{T: math.Sqrt2, Object: floor}}
	comps, err := PrepareComputations(allXS[0], r, allXS)
	if err != nil {
		t.Fatalf("PrepareComputations() error = %v", err)
	}
	got, err := w.ShadeHit(comps, MaxDepth)
	if err != nil {
		t.Fatalf("ShadeHit() error = %v", err)
	}
	want := geom.NewColor(0.93391, 0.69643, 0.69243)
	if !got.Equal(want) {
		t.Errorf("ShadeHit() = %v, want %v", got, want)
	}
}

func TestMutuallyReflectiveMirrorsTerminate(t *testing.T) {
	w := New()
	w.Lights = []light.PointLight{light.NewPointLight(geom.Point(0, 0, 0), geom.White)}

	lower := shape.NewPlane()
	lower.Material.Reflective = 1
	lower.SetTransform(geom.Translation(0, -1, 0))

	upper := shape.NewPlane()
	upper.Material.Reflective = 1
	upper.SetTransform(geom.Translation(0, 1, 0))

	w.Objects = []*shape.Object{lower, upper}

	r := geom.NewRay(geom.Point(0, 0, 0), geom.Vector(0, 1, 0))

	done := make(chan error, 1)
	go func() {
		_, err := w.ColorAt(r, MaxDepth)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ColorAt() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ColorAt() did not terminate for mutually reflective mirrors")
	}
}
