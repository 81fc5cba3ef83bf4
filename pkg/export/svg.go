package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

const (
	svgMargin     = 24
	svgBulletR    = 3
	svgBackground = "#282a36"
	svgForeground = "#f8f8f2"
	svgBullet     = "#bd93f9"
	svgTitleColor = "#8be9fd"
)

// WriteSVG renders the positioned sequence as a standalone SVG document.
func WriteSVG(w io.Writer, pos view.Positioned, opts Options) error {
	rows := flowRows(pos)
	fontSize := opts.fontSize()
	rowHeight := int(fontSize * 1.6)

	width := opts.Width
	if width == 0 {
		width = svgWidth(rows, fontSize)
	}

	top := svgMargin
	if opts.Title != "" {
		top += rowHeight * 2
	}
	height := top + len(rows)*rowHeight + svgMargin

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", svgBackground))

	if opts.Title != "" {
		canvas.Text(svgMargin, svgMargin+rowHeight,
			opts.Title,
			fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:monospace;font-weight:bold", svgTitleColor, fontSize*1.2))
	}

	for i, row := range rows {
		y := top + (i+1)*rowHeight
		x := svgMargin + int(row.LeftOffset)
		op := opacity(row.Focus)

		canvas.Circle(x, y-int(fontSize/3), svgBulletR,
			fmt.Sprintf("fill:%s;fill-opacity:%.2f", svgBullet, op))
		canvas.Text(x+svgBulletR*4, y,
			row.Thought.Value,
			fmt.Sprintf("fill:%s;fill-opacity:%.2f;font-size:%.0fpx;font-family:monospace", svgForeground, op, fontSize))
	}

	canvas.End()
	return nil
}

// svgWidth estimates a canvas width from the widest row. Monospace glyphs
// are roughly 0.6em wide.
func svgWidth(rows []view.PositionedThought, fontSize float64) int {
	width := 480
	for _, row := range rows {
		w := svgMargin*2 + int(row.LeftOffset) + int(float64(len(row.Thought.Value))*fontSize*0.6)
		if w > width {
			width = w
		}
	}
	return width
}
