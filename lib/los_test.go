package lib

import "testing"

func flatRaster() *Raster {
	return NewRaster(-1000, -1000, 10, 200, 200)
}

func TestValidateRejectsZeroDistance(t *testing.T) {
	a := &Site{Lon: 0, Lat: 0, Alt: 10}
	b := &Site{Lon: 0, Lat: 0, Alt: 10}
	d := Validate(a, b, flatRaster(), LOSConfig{FresnelRadiusM: 1})
	if d.Accepted || d.Reason != RejectZeroDistance {
		t.Fatalf("expected RejectZeroDistance, got %+v", d)
	}
}

func TestValidateRejectsSameBuilding(t *testing.T) {
	a := &Site{Lon: 0, Lat: 0, Alt: 10, BuildingID: "b1"}
	b := &Site{Lon: 100, Lat: 0, Alt: 10, BuildingID: "b1"}
	d := Validate(a, b, flatRaster(), LOSConfig{FresnelRadiusM: 1})
	if d.Accepted || d.Reason != RejectSameBuilding {
		t.Fatalf("expected RejectSameBuilding, got %+v", d)
	}
}

func TestValidateAcceptsClearFlatTerrain(t *testing.T) {
	a := &Site{Lon: 0, Lat: 0, Alt: 30}
	b := &Site{Lon: 100, Lat: 0, Alt: 30}
	d := Validate(a, b, flatRaster(), LOSConfig{FresnelRadiusM: 1, MaxDistanceM: 1000})
	if !d.Accepted {
		t.Fatalf("expected acceptance over flat terrain well above it, got %+v", d)
	}
}

func TestPointToLine3DPerpendicularDistance(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 0, 0}
	p, dist := pointToLine3D(Vec3{5, 0, 3}, a, b)
	if p != 0.5 {
		t.Fatalf("expected foot at the midpoint (p=0.5), got %v", p)
	}
	if dist != 3 {
		t.Fatalf("expected perpendicular distance 3, got %v", dist)
	}
}

func TestValidateRejectsDistanceRange(t *testing.T) {
	a := &Site{Lon: 0, Lat: 0, Alt: 30}
	b := &Site{Lon: 100, Lat: 0, Alt: 30}
	d := Validate(a, b, flatRaster(), LOSConfig{FresnelRadiusM: 1, MaxDistanceM: 50})
	if d.Accepted || d.Reason != RejectDistanceRange {
		t.Fatalf("expected RejectDistanceRange, got %+v", d)
	}
}
