// Package ui provides the bundled tray surface for the indicator.
// This file contains icon rasterization for the system tray.
package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/yllada/netbar/common"
)

// IconPalette defines the colors used when rasterizing glyphs.
type IconPalette struct {
	Symbol color.RGBA // lit parts of the glyph
	Muted  color.RGBA // unlit or unavailable parts
	Accent color.RGBA // disabled strike
}

// DefaultPalette returns the default tray palette.
func DefaultPalette() IconPalette {
	return IconPalette{
		Symbol: color.RGBA{235, 235, 235, 255}, // Near-white
		Muted:  color.RGBA{120, 120, 120, 255}, // Gray
		Accent: color.RGBA{211, 80, 80, 255},   // Soft red
	}
}

// IconRenderer turns icon references into PNG bytes for the tray.
//
// References with the "icon:" prefix are drawn as built-in glyphs keyed by
// the freedesktop icon name; anything else is treated as an image file path
// and read as-is. Rendered glyphs are cached per reference and size.
type IconRenderer struct {
	palette IconPalette

	mu    sync.Mutex
	cache map[string][]byte
}

// NewIconRenderer creates a renderer with the given palette.
func NewIconRenderer(palette IconPalette) *IconRenderer {
	return &IconRenderer{
		palette: palette,
		cache:   make(map[string][]byte),
	}
}

// Render returns PNG bytes for the given icon reference at the given size.
// Unknown references fall back to a generic network glyph so the tray always
// has something to show.
func (r *IconRenderer) Render(ref string, size int) []byte {
	if size <= 0 {
		size = common.TrayIconSize
	}

	key := fmt.Sprintf("%s@%d", ref, size)
	r.mu.Lock()
	if data, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return data
	}
	r.mu.Unlock()

	var data []byte
	if name, ok := strings.CutPrefix(ref, "icon:"); ok {
		data = r.drawGlyph(name, size)
	} else if fileData, err := os.ReadFile(ref); err == nil {
		data = fileData
	} else {
		data = r.drawGlyph("", size)
	}

	r.mu.Lock()
	r.cache[key] = data
	r.mu.Unlock()
	return data
}

// drawGlyph rasterizes a freedesktop icon name into a PNG glyph.
func (r *IconRenderer) drawGlyph(name string, size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	switch {
	case strings.Contains(name, "network-wired"):
		r.drawWired(img, size)

	case strings.Contains(name, "network-wireless"):
		switch {
		case strings.Contains(name, "hardware-disabled"):
			r.drawWifi(img, size, 3, r.palette.Muted)
			r.drawStrike(img, size)
		case strings.Contains(name, "offline"):
			r.drawWifi(img, size, 0, r.palette.Muted)
		default:
			r.drawWifi(img, size, wifiArcs(name), r.palette.Symbol)
		}

	case strings.Contains(name, "network-cellular"):
		switch {
		case strings.Contains(name, "hardware-disabled"):
			r.drawBars(img, size, 0, r.palette.Muted)
			r.drawStrike(img, size)
		case strings.Contains(name, "offline"):
			r.drawBars(img, size, 0, r.palette.Muted)
		default:
			r.drawBars(img, size, 4, r.palette.Symbol)
		}

	case strings.Contains(name, "vpn"):
		r.drawShield(img, size)
		r.drawLock(img, size)

	default:
		// Generic network glyph for names we have no drawing for.
		r.drawWifi(img, size, 3, r.palette.Symbol)
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// wifiArcs maps a wireless signal icon name to the number of lit arcs.
func wifiArcs(name string) int {
	switch {
	case strings.Contains(name, "signal-none"):
		return 0
	case strings.Contains(name, "signal-weak"):
		return 1
	case strings.Contains(name, "signal-ok"):
		return 2
	case strings.Contains(name, "signal-good"):
		return 2
	case strings.Contains(name, "signal-excellent"):
		return 3
	default:
		return 3
	}
}

// drawWifi draws a wireless glyph: a base dot and three arcs fanning out
// above it. Arcs beyond lit are drawn in the muted color.
func (r *IconRenderer) drawWifi(img *image.RGBA, size int, lit int, litColor color.RGBA) {
	cx := float64(size) / 2
	baseY := float64(size) * 0.88
	step := float64(size) * 0.19
	thickness := math.Max(float64(size)*0.07, 1.0)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			dx := fx - cx
			dy := baseY - fy
			if dy < 0 {
				continue
			}
			// Keep pixels inside the roughly 90 degree fan.
			if math.Abs(dx) > dy+thickness {
				continue
			}

			dist := math.Hypot(dx, dy)

			// Base dot.
			if dist <= step*0.45 {
				img.Set(x, y, litColor)
				continue
			}

			for arc := 1; arc <= 3; arc++ {
				radius := step * (float64(arc) + 0.35)
				if math.Abs(dist-radius) <= thickness/2 {
					if arc <= lit {
						img.Set(x, y, litColor)
					} else {
						img.Set(x, y, r.palette.Muted)
					}
					break
				}
			}
		}
	}
}

// drawStrike draws the accent diagonal strike used for hardware-disabled
// glyphs: a line from the top-left to the bottom-right of the icon.
func (r *IconRenderer) drawStrike(img *image.RGBA, size int) {
	inset := float64(size) * 0.12
	thickness := math.Max(float64(size)*0.08, 1.0)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if fx < inset || fx > float64(size)-inset ||
				fy < inset || fy > float64(size)-inset {
				continue
			}
			// Distance from the top-left to bottom-right diagonal.
			if math.Abs(fx-fy)/math.Sqrt2 <= thickness/2 {
				img.Set(x, y, r.palette.Accent)
			}
		}
	}
}

// drawBars draws a cellular glyph: four ascending bars. Bars beyond lit are
// drawn hollow in the muted color.
func (r *IconRenderer) drawBars(img *image.RGBA, size int, lit int, litColor color.RGBA) {
	const bars = 4
	gap := math.Max(float64(size)*0.05, 1.0)
	barWidth := (float64(size) - gap*float64(bars+1)) / float64(bars)
	bottom := float64(size) * 0.9

	for i := 0; i < bars; i++ {
		left := gap + float64(i)*(barWidth+gap)
		height := float64(size) * 0.8 * float64(i+1) / float64(bars)
		top := bottom - height

		for y := int(top); y < int(bottom); y++ {
			for x := int(left); x < int(left+barWidth); x++ {
				if x < 0 || x >= size || y < 0 || y >= size {
					continue
				}
				if i < lit {
					img.Set(x, y, litColor)
					continue
				}
				// Hollow bar: outline only.
				edge := y == int(top) || y == int(bottom)-1 ||
					x == int(left) || x == int(left+barWidth)-1
				if edge {
					img.Set(x, y, r.palette.Muted)
				}
			}
		}
	}
}

// drawWired draws a wired glyph: a connector block with a cable stem down to
// a base line.
func (r *IconRenderer) drawWired(img *image.RGBA, size int) {
	c := r.palette.Symbol
	s := float64(size)

	boxLeft := int(s * 0.18)
	boxRight := int(s * 0.82)
	boxTop := int(s * 0.1)
	boxBottom := int(s * 0.5)

	// Connector outline.
	for y := boxTop; y <= boxBottom; y++ {
		for x := boxLeft; x <= boxRight; x++ {
			edge := y == boxTop || y == boxBottom || x == boxLeft || x == boxRight
			if edge {
				img.Set(x, y, c)
			}
		}
	}

	// Pins inside the connector.
	pinTop := boxTop + 2
	pinBottom := boxTop + (boxBottom-boxTop)/2
	for _, px := range []int{boxLeft + (boxRight-boxLeft)/3, boxRight - (boxRight-boxLeft)/3} {
		for y := pinTop; y <= pinBottom; y++ {
			img.Set(px, y, c)
		}
	}

	// Cable stem.
	stemX := size / 2
	stemBottom := int(s * 0.78)
	for y := boxBottom + 1; y <= stemBottom; y++ {
		img.Set(stemX, y, c)
		img.Set(stemX-1, y, c)
	}

	// Base line.
	baseY := stemBottom + 1
	for x := int(s * 0.28); x <= int(s*0.72); x++ {
		img.Set(x, baseY, c)
		img.Set(x, baseY+1, c)
	}
}

// drawShield draws the shield shape used by the VPN glyph.
func (r *IconRenderer) drawShield(img *image.RGBA, size int) {
	centerX := float64(size) / 2
	topY := 1.0
	bottomY := float64(size) - 2
	shieldWidth := float64(size) - 4

	isInShield := func(x, y float64) bool {
		relY := (y - topY) / (bottomY - topY)
		if relY < 0 || relY > 1 {
			return false
		}

		var halfWidth float64
		if relY < 0.5 {
			halfWidth = shieldWidth/2 - relY*0.5
		} else {
			progress := (relY - 0.5) * 2
			halfWidth = (shieldWidth/2 - 0.25) * (1 - progress*progress)
		}

		return x >= centerX-halfWidth && x <= centerX+halfWidth
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5

			if isInShield(fx, fy) {
				isBorder := !isInShield(fx-1, fy) || !isInShield(fx+1, fy) ||
					!isInShield(fx, fy-1) || !isInShield(fx, fy+1)

				if isBorder {
					img.Set(x, y, r.palette.Symbol)
				} else {
					img.Set(x, y, r.palette.Muted)
				}
			}
		}
	}
}

// drawLock draws a lock symbol centered inside the shield.
func (r *IconRenderer) drawLock(img *image.RGBA, size int) {
	c := r.palette.Symbol
	scale := float64(size) / 22.0
	at := func(v int) int { return int(math.Round(float64(v) * scale)) }

	// Lock body.
	for y := at(10); y <= at(15); y++ {
		for x := at(8); x <= at(14); x++ {
			if y == at(10) || y == at(15) || x == at(8) || x == at(14) {
				img.Set(x, y, c)
			}
		}
	}

	// Lock shackle.
	for y := at(6); y <= at(10); y++ {
		if y <= at(8) {
			img.Set(at(9), y, c)
			img.Set(at(13), y, c)
		}
		if y == at(6) {
			for x := at(9); x <= at(13); x++ {
				img.Set(x, y, c)
			}
		}
	}
}
