package cv

import (
	"net/url"
	"strings"
)

// FallbackImageURL replaces headshot sources that are not valid URLs.
const FallbackImageURL = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop&crop=face"

// Shape is the headshot variant. ShapeNone means the CV has no image.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeRectangular
	ShapeCircular
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangular:
		return "rectangular"
	case ShapeCircular:
		return "circular"
	default:
		return "none"
	}
}

// shapeFromAlt maps the alt-text convention onto a shape.
func shapeFromAlt(alt string) Shape {
	if strings.ToLower(strings.TrimSpace(alt)) == "circular" {
		return ShapeCircular
	}
	return ShapeRectangular
}

// Styling sizes a headshot. Values are CSS lengths.
type Styling struct {
	Width        string
	Height       string
	BorderRadius string
	ObjectFit    string
}

// IsZero reports whether no explicit styling was set.
func (s Styling) IsZero() bool {
	return s == Styling{}
}

// Headshot is the profile image taken from the first markdown image.
type Headshot struct {
	Shape Shape
	Src   string
	Alt   string
	// Styling overrides the per-layout defaults when set.
	Styling Styling
}

// Present reports whether the CV carries a headshot.
func (h Headshot) Present() bool {
	return h.Shape != ShapeNone
}

// AltText is the accessible description rendered on the image.
func (h Headshot) AltText() string {
	switch h.Shape {
	case ShapeCircular:
		return "Circular Headshot"
	case ShapeRectangular:
		return "Rectangular Headshot"
	default:
		return ""
	}
}

// ResolveStyling returns the styling to render with. Explicit styling
// wins over layout defaults; a circular shape always forces a square box.
func (h Headshot) ResolveStyling(layout Layout) Styling {
	s := h.Styling
	if s.IsZero() {
		s = defaultStyling(h.Shape, layout)
	}
	if s.ObjectFit == "" {
		s.ObjectFit = "cover"
	}
	switch h.Shape {
	case ShapeCircular:
		s.Height = s.Width
		s.BorderRadius = "50%"
	case ShapeRectangular:
		if s.BorderRadius == "" {
			s.BorderRadius = "8px"
		}
	case ShapeNone:
		return Styling{}
	}
	return s
}

func defaultStyling(shape Shape, layout Layout) Styling {
	width, height := "120px", "150px"
	if layout == LayoutTwoColumn {
		width, height = "140px", "175px"
	}
	if shape == ShapeCircular {
		height = width
	}
	return Styling{Width: width, Height: height, ObjectFit: "cover"}
}

// ValidateImageURL returns src when it is an absolute URL, otherwise the
// fallback image.
func ValidateImageURL(src string) string {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil || u.Scheme == "" {
		return FallbackImageURL
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return FallbackImageURL
		}
	case "data", "file":
	default:
		if u.Opaque == "" && u.Host == "" && u.Path == "" {
			return FallbackImageURL
		}
	}
	return strings.TrimSpace(src)
}
