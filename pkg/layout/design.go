package layout

import (
	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
)

// Device classes selected by viewport width.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// Breakpoints between device classes, in CSS pixels.
const (
	breakpointMobile  = 640
	breakpointDesktop = 1025
)

// Shared visual constants, device-independent.
const (
	FullOpacity  = 1.0
	FadedOpacity = 0.15

	FitViewPadding = 40.0
)

// Design is the responsive token set consumed by the layout engine and
// renderer. One of three fixed profiles, selected by viewport width.
type Design struct {
	NodeWidth     float64
	NodeHeight    float64
	NodeRadius    float64
	NameFontSize  float64
	MetaFontSize  float64
	SiblingGap    float64
	GenerationGap float64
	SpouseGap     float64
	MinZoom       float64
	MaxZoom       float64
	Padding       float64
}

// GroupGap is the horizontal gap between sibling subtrees (cousin groups).
func (d Design) GroupGap() float64 { return d.SiblingGap * 1.5 }

var designs = map[string]Design{
	DeviceDesktop: {
		NodeWidth:     180,
		NodeHeight:    70,
		NodeRadius:    14,
		NameFontSize:  15,
		MetaFontSize:  12,
		SiblingGap:    60,
		GenerationGap: 140,
		SpouseGap:     24,
		MinZoom:       0.2,
		MaxZoom:       3,
		Padding:       60,
	},
	DeviceTablet: {
		NodeWidth:     160,
		NodeHeight:    65,
		NodeRadius:    12,
		NameFontSize:  14,
		MetaFontSize:  11,
		SiblingGap:    50,
		GenerationGap: 130,
		SpouseGap:     20,
		MinZoom:       0.15,
		MaxZoom:       3,
		Padding:       50,
	},
	DeviceMobile: {
		NodeWidth:     130,
		NodeHeight:    55,
		NodeRadius:    10,
		NameFontSize:  12,
		MetaFontSize:  10,
		SiblingGap:    30,
		GenerationGap: 100,
		SpouseGap:     12,
		MinZoom:       0.1,
		MaxZoom:       4,
		Padding:       30,
	},
}

// DesignFor returns the token profile for a device class.
// Unknown devices return an INVALID_DEVICE error.
func DesignFor(device string) (Design, error) {
	d, ok := designs[device]
	if !ok {
		return Design{}, kterrors.New(kterrors.ErrCodeInvalidDevice,
			"unknown device %q (must be one of: mobile, tablet, desktop)", device)
	}
	return d, nil
}

// DeviceFor maps a viewport width in pixels to a device class.
func DeviceFor(width float64) string {
	switch {
	case width < breakpointMobile:
		return DeviceMobile
	case width < breakpointDesktop:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// GenerationY returns the world-space top Y of the given generation row.
func (d Design) GenerationY(generation int) float64 {
	return d.Padding + float64(generation)*(d.NodeHeight+d.GenerationGap)
}
