package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/picmix"
)

// hudRefresh is how often, in seconds, the HUD text is redrawn.
const hudRefresh = 0.5

// hud shows FPS, TPS and the gesture state in the top-left corner.
type hud struct {
	img   *ebiten.Image
	since float64
}

func newHUD() *hud {
	// 140x46 fits three DebugPrint lines.
	return &hud{img: ebiten.NewImage(140, 46), since: hudRefresh}
}

func (h *hud) update(dt float64, m *picmix.Mixer) {
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), m))
}

func (h *hud) draw(screen *ebiten.Image) {
	screen.DrawImage(h.img, nil)
}

func hudText(fps, tps float64, m *picmix.Mixer) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%d/%d %s",
		fps, tps, m.Len(), m.Config().Add.Count, m.Mode())
}
