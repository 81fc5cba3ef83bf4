package export

import (
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

const (
	pngMargin  = 24.0
	pngBulletR = 3.0
)

// WritePNG renders the positioned sequence as a PNG image. The bitmap
// renderer uses a fixed bitmap face, so the font size only affects geometry.
func WritePNG(w io.Writer, pos view.Positioned, opts Options) error {
	rows := flowRows(pos)
	fontSize := opts.fontSize()
	rowHeight := fontSize * 1.6

	width := opts.Width
	if width == 0 {
		width = svgWidth(rows, fontSize)
	}

	top := pngMargin
	if opts.Title != "" {
		top += rowHeight * 2
	}
	height := int(top + float64(len(rows))*rowHeight + pngMargin)

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.157, 0.165, 0.212) // #282a36
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if opts.Title != "" {
		dc.SetRGB(0.545, 0.914, 0.992) // #8be9fd
		dc.DrawString(opts.Title, pngMargin, pngMargin+rowHeight)
	}

	for i, row := range rows {
		y := top + float64(i+1)*rowHeight
		x := pngMargin + row.LeftOffset
		op := opacity(row.Focus)

		dc.SetRGBA(0.741, 0.576, 0.976, op) // #bd93f9
		dc.DrawCircle(x, y-fontSize/3, pngBulletR)
		dc.Fill()

		dc.SetRGBA(0.973, 0.973, 0.949, op) // #f8f8f2
		dc.DrawString(row.Thought.Value, x+pngBulletR*4, y)
	}

	return dc.EncodePNG(w)
}
