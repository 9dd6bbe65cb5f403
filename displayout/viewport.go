package displayout

import (
	"fmt"
	"strconv"
	"strings"
)

type ViewportKind string

const (
	Sm     ViewportKind = "sm"
	Md     ViewportKind = "md"
	Lg     ViewportKind = "lg"
	Xl     ViewportKind = "xl"
	XXl    ViewportKind = "2xl"
	Custom ViewportKind = "custom"
)

// Viewport is the page size a diagram is laid out for. Width bounds wrapping;
// height is informational.
type Viewport struct {
	Kind   ViewportKind
	Width  float64
	Height float64
}

var viewports = map[ViewportKind]Viewport{
	Sm:  {Sm, 640, 480},
	Md:  {Md, 768, 576},
	Lg:  {Lg, 1024, 768},
	Xl:  {Xl, 1280, 960},
	XXl: {XXl, 1536, 1152},
}

var DefaultViewport = viewports[Md]

func ViewportOf(kind ViewportKind) (Viewport, bool) {
	v, ok := viewports[kind]
	return v, ok
}

func CustomViewport(width, height float64) Viewport {
	return Viewport{Kind: Custom, Width: width, Height: height}
}

// ParseViewport accepts a breakpoint name (sm, md, lg, xl, 2xl) or WIDTHxHEIGHT.
func ParseViewport(s string) (Viewport, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := ViewportOf(ViewportKind(s)); ok {
		return v, nil
	}
	w, h, ok := strings.Cut(s, "x")
	if ok {
		width, werr := strconv.ParseFloat(w, 64)
		height, herr := strconv.ParseFloat(h, 64)
		if werr == nil && herr == nil && width > 0 && height > 0 {
			return CustomViewport(width, height), nil
		}
	}
	return Viewport{}, fmt.Errorf("invalid viewport %q: expected sm, md, lg, xl, 2xl or WIDTHxHEIGHT", s)
}

func (v Viewport) String() string {
	if v.Kind == Custom {
		return strconv.FormatFloat(v.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(v.Height, 'f', -1, 64)
	}
	return string(v.Kind)
}

// LevelOfDetail controls whether descriptions are rendered.
type LevelOfDetail int

const (
	Normal LevelOfDetail = iota
	Simple
)

func ParseLevelOfDetail(s string) (LevelOfDetail, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Normal, nil
	case "simple":
		return Simple, nil
	}
	return Normal, fmt.Errorf("invalid level of detail %q: expected simple or normal", s)
}

func (l LevelOfDetail) String() string {
	if l == Simple {
		return "simple"
	}
	return "normal"
}
