package gui

import (
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/hashviz/internal/audio"
	"github.com/san-kum/hashviz/internal/config"
	"github.com/san-kum/hashviz/internal/scene"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColDot     = rl.GetColor(0x888888ff) // idle lattice point
	ColActive  = rl.GetColor(0xa05fffff) // point inside the pointer radius
	ColBar     = rl.GetColor(0x0ab3ffff)
	ColText    = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
	ColShade   = rl.NewColor(0, 0, 0, 199)
	ColPanel   = rl.NewColor(255, 255, 255, 5)
	ColBorder  = rl.NewColor(255, 255, 255, 15)
	ColButton  = rl.GetColor(0x0ab3ffff)
	ColBtnText = rl.GetColor(0x02121aff)
)

const (
	Heading = "Welcome to HashUtility"
	Tagline = "Be fast."
	Button  = "Enter"

	fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

type App struct {
	Config *config.Config
	Disp   *scene.Dispatcher
	Font   rl.Font

	// Graph is set once the unlock has built the audio graph.
	Graph *audio.Graph

	// UnlockErr is the last failed unlock, shown under the button.
	UnlockErr error

	onScreen bool
	log      *zap.Logger
}

// initWindow opens a resizable window sized from the config.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		Config: cfg,
		Font:   loadFont(),
		log:    log,
	}

	// without a track the gate still opens, the bars just never move
	var factory scene.GraphFactory
	if cfg.Audio.Track != "" {
		factory = a.buildGraph
	}
	a.Disp = scene.NewDispatcher(cfg.SceneOptions(), factory, log)
	a.Disp.OnResize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	return a
}

func (a *App) buildGraph() (scene.Graph, error) {
	g, err := audio.Setup(audio.Options{
		Track:   a.Config.Audio.Track,
		FFTSize: a.Config.Audio.FFTSize,
	}, a.log)
	if err != nil {
		return nil, err
	}
	a.Graph = g
	return g, nil
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(cfg *config.Config, log *zap.Logger) {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(cfg, log)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Graph != nil {
		a.Graph.Close()
	}
	if a.Font.Texture.ID != rl.GetFontDefault().Texture.ID {
		rl.UnloadFont(a.Font)
	}
}

// Update turns this frame's input into dispatcher calls, then advances the
// scene by one frame.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.Disp.OnResize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	on := rl.IsCursorOnScreen()
	switch {
	case on:
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 || !a.onScreen {
			pos := rl.GetMousePosition()
			a.Disp.OnPointerMove(float64(pos.X), float64(pos.Y), time.Now())
		}
	case a.onScreen:
		a.Disp.OnPointerLeave()
	}
	a.onScreen = on

	if !a.Disp.Scene().Unlocked() {
		clicked := rl.IsMouseButtonPressed(rl.MouseLeftButton) &&
			rl.CheckCollisionPointRec(rl.GetMousePosition(), a.buttonRect())
		if clicked || rl.IsKeyPressed(rl.KeyEnter) {
			a.UnlockErr = a.Disp.OnUnlock()
		}
	}

	a.Disp.OnFrame()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	s := a.Disp.Scene()
	a.drawGrid(s)
	a.drawBars(s)

	if !s.Unlocked() {
		a.drawOverlay()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y float32, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(x, y), size, 1, color)
}

// drawCentered draws text horizontally centered on cx.
func (a *App) drawCentered(text string, cx, y float32, size float32, color rl.Color) {
	w := rl.MeasureTextEx(a.Font, text, size, 1).X
	a.drawText(text, cx-w/2, y, size, color)
}
