package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/engine"
)

// playingOnly hides a layer on the game-over screen
type playingOnly struct{}

func (playingOnly) IsVisible(ctx Context) bool { return !ctx.GameOver() }

// panelRenderer fills the preview panel and draws the border between it and the playfield
type panelRenderer struct{}

func (panelRenderer) Render(ctx Context, buf *Buffer) {
	l := ctx.Layout
	x0, x1 := l.PanelColumns()
	buf.Fill(x0, hudRows, x1, l.Rows, ' ', StylePanel)

	border := tcell.StyleDefault.Foreground(RgbBorder).Background(RgbBackground)
	for y := hudRows; y < l.Rows; y++ {
		buf.Set(x0-1, y, constants.GlyphBorder, border)
	}
}

// paddleRenderer draws the paddle as a solid bar
type paddleRenderer struct{ playingOnly }

func (paddleRenderer) Render(ctx Context, buf *Buffer) {
	p := ctx.Frame.Paddle
	x0, y0, x1, y1 := ctx.Layout.CellRect(engine.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height})
	style := tcell.StyleDefault.Foreground(RgbPaddle).Background(RgbBackground)
	buf.Fill(x0, y0, x1, y1, constants.GlyphPaddle, style)
}

// ballRenderer draws the ball at its center cell
type ballRenderer struct{ playingOnly }

func (ballRenderer) Render(ctx Context, buf *Buffer) {
	b := ctx.Frame.Ball
	l := ctx.Layout
	cx := min(l.CellX(b.X), l.FieldColumns()-1)
	style := tcell.StyleDefault.Foreground(RgbBall).Background(RgbBackground)
	buf.Set(cx, l.CellY(b.Y), constants.GlyphBall, style)
}

// hudRenderer writes score, lives, level and best on the top row
type hudRenderer struct{}

func (hudRenderer) Render(ctx Context, buf *Buffer) {
	f := ctx.Frame
	style := tcell.StyleDefault.Foreground(RgbText).Background(RgbBackground).Bold(true)
	text := fmt.Sprintf(constants.HUDScoreFormat+"  "+constants.HUDLivesFormat+"  "+constants.HUDLevelFormat,
		f.Tally.Score, f.Tally.Lives, f.Tally.Level)
	buf.Text(1, 0, text, style)

	best := fmt.Sprintf(constants.HUDBestFormat, f.Best)
	buf.Text(ctx.Layout.Cols-len(best)-1, 0, best, tcell.StyleDefault.Foreground(RgbTextDim).Background(RgbBackground))
}

// previewRenderer shows where the steering hand is, or that none is seen
type previewRenderer struct{}

func (previewRenderer) Render(ctx Context, buf *Buffer) {
	l := ctx.Layout
	x0, x1 := l.PanelColumns()
	if x1-x0 < 1 {
		return
	}
	mid := (x0 + x1) / 2
	buf.TextCentered(mid, hudRows, constants.LabelPreview, StylePanel)

	row := hudRows + (l.Rows-hudRows)/2
	hand := ctx.Frame.Hand
	if !hand.Detected {
		buf.TextCentered(mid, row, constants.LabelNoHand, StylePanel)
		return
	}
	cx := x0 + int(math.Round(hand.X*float64(x1-x0-1)))
	buf.Set(cx, row, constants.GlyphHand, tcell.StyleDefault.Foreground(RgbHand).Background(RgbPanel).Bold(true))
}

// gameOverRenderer draws the title, final score and the Restart and Quit buttons
type gameOverRenderer struct{}

func (gameOverRenderer) IsVisible(ctx Context) bool { return ctx.GameOver() }

func (gameOverRenderer) Render(ctx Context, buf *Buffer) {
	l := ctx.Layout
	w := ctx.Frame.Window
	cx := l.CellX(w.Width / 2)
	title := tcell.StyleDefault.Foreground(RgbGameOverText).Background(RgbBackground).Bold(true)

	buf.TextCentered(cx, l.CellY(w.Height/2), constants.TitleGameOver, title)
	score := fmt.Sprintf(constants.FinalScoreTitle, ctx.Frame.Tally.Score)
	buf.TextCentered(cx, l.CellY(w.Height/2-100), score, title)

	for _, b := range ctx.Frame.Buttons {
		bg := RgbButton
		if b.Control == ctx.Hover {
			bg = RgbButtonHover
		}
		style := tcell.StyleDefault.Foreground(RgbButtonText).Background(bg).Bold(true)
		x0, y0, x1, y1 := l.CellRect(b.Rect)
		buf.Fill(x0, y0, x1, y1, ' ', style)
		buf.TextCentered((x0+x1)/2, (y0+y1-1)/2, b.Label, style)
	}
}
