package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/hashviz/internal/scene"
)

const (
	panelW = 360
	panelH = 170
	btnW   = 96
	btnH   = 38
)

func (a *App) drawGrid(s *scene.Scene) {
	r := float32(s.Field.Params().Size)
	for _, p := range s.Field.Points() {
		col := ColDot
		if p.Active {
			col = ColActive
		}
		rl.DrawCircleV(rl.NewVector2(float32(p.Pos.X), float32(p.Pos.Y)), r, col)
	}
}

func (a *App) drawBars(s *scene.Scene) {
	for _, b := range s.Bars {
		if b.H <= 0 {
			continue
		}
		rl.DrawRectangleRec(rl.NewRectangle(
			float32(b.X), float32(b.Top()), float32(b.W), float32(b.H),
		), ColBar)
	}
}

func (a *App) panelRect() rl.Rectangle {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	return rl.NewRectangle(w/2-panelW/2, h/2-panelH/2, panelW, panelH)
}

func (a *App) buttonRect() rl.Rectangle {
	p := a.panelRect()
	return rl.NewRectangle(p.X+p.Width/2-btnW/2, p.Y+p.Height-btnH-26, btnW, btnH)
}

// drawOverlay dims the scene and draws the unlock panel.
func (a *App) drawOverlay() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, w, h, ColShade)

	p := a.panelRect()
	rl.DrawRectangleRounded(p, 0.1, 8, ColPanel)
	rl.DrawRectangleLinesEx(p, 1, ColBorder)

	cx := p.X + p.Width/2
	a.drawCentered(Heading, cx, p.Y+26, 20, ColText)
	a.drawCentered(Tagline, cx, p.Y+60, 13, ColTextDim)

	btn := a.buttonRect()
	col := ColButton
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), btn) {
		col = rl.ColorBrightness(ColButton, 0.15)
	}
	rl.DrawRectangleRounded(btn, 0.3, 8, col)
	a.drawCentered(Button, cx, btn.Y+btn.Height/2-7, 14, ColBtnText)

	if a.UnlockErr != nil {
		a.drawCentered("audio unavailable, press Enter to retry", cx, p.Y+p.Height+14, 13, rl.Red)
	}
}
