package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	got := Vec3{1, 2, 3}.Add(Vec3{3, 4, 5})
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector should stay zero, got %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	if got, want := a.Lerp(b, 0.5), (Vec3{5, 10, 15}); got != want {
		t.Errorf("Vec3.Lerp(0.5) = %v, want %v", got, want)
	}

	// Endpoints are reproduced exactly
	c := Vec3{0.1, -3.7, 12.25}
	d := Vec3{7.3, 0.3, -1.9}
	if got := c.Lerp(d, 0); got != c {
		t.Errorf("Vec3.Lerp(0) = %v, want %v", got, c)
	}
	if got := c.Lerp(d, 1); got != d {
		t.Errorf("Vec3.Lerp(1) = %v, want %v", got, d)
	}
}
