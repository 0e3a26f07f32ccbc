// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomath

import (
	"math"
	"testing"
)

func TestWebMercatorProjection_RoundTrip(t *testing.T) {
	proj := NewWebMercatorProjection(WGS84)

	tests := []struct {
		name string
		c    Cartographic
	}{
		{"origin", Cartographic{}},
		{"mid-latitude", Cartographic{Longitude: 1.0, Latitude: 0.6}},
		{"near limit", Cartographic{Longitude: -2.5, Latitude: -1.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := proj.Project(tt.c)
			back := proj.Unproject(x, y)
			if math.Abs(back.Longitude-tt.c.Longitude) > 1e-9 {
				t.Errorf("longitude: got %v want %v", back.Longitude, tt.c.Longitude)
			}
			if math.Abs(back.Latitude-tt.c.Latitude) > 1e-9 {
				t.Errorf("latitude: got %v want %v", back.Latitude, tt.c.Latitude)
			}
		})
	}
}

func TestSplitHighLow_RecombinesWithinFloat32Precision(t *testing.T) {
	value := 12345678.123456
	high, low := SplitHighLow(value)
	recombined := float64(high) + float64(low)
	if math.Abs(recombined-value) > 1e-3 {
		t.Errorf("recombined %v, want close to %v", recombined, value)
	}
}

func TestGeodeticLatitudeToMercatorAngle_ClampsAtLimit(t *testing.T) {
	const limit = 1.4844222297453324
	got := GeodeticLatitudeToMercatorAngle(2.0)
	want := GeodeticLatitudeToMercatorAngle(limit)
	if got != want {
		t.Errorf("expected clamping at projection limit, got %v want %v", got, want)
	}
}
