// Package picmix composes several independently placed pictures on a
// fixed-size canvas and flattens them into one exported image.
//
// A [Mixer] owns the picture list, the current selection and four layers:
// background (guides drawn by the host), content (the pictures), overlay
// (selection outline, corner handles, buttons, watermark) and result
// (export only). Hosts forward presses and drags in canvas coordinates and
// display the layers after every render.
//
// # Quick start
//
//	cfg := picmix.DefaultConfig()
//	cfg.AllowRemove = true
//
//	m, err := picmix.NewMixer(375, 500, cfg)
//	if err != nil {
//		return err
//	}
//	if err := m.Load(ctx); err != nil {
//		return err
//	}
//	if _, err := m.Add(ctx, "photo.jpg"); err != nil {
//		return err
//	}
//	res, err := m.Save(ctx, picmix.SaveOptions{Format: picmix.FormatPNG})
//
// # Gestures
//
// [Mixer.TouchStart] classifies a press as a delete-button tap, a
// rotate-button tap, a corner-handle grab, a picture grab or a miss.
// [Mixer.TouchMove] then moves or resizes the selected picture, at most once
// per [Config.RenderInterval]. Resizing in ratio mode keeps the insertion
// aspect ratio; the bound-limit mode keeps pictures (or their handles)
// inside the canvas.
//
// # Scripts
//
// [LoadScript] and [Runner] replay JSON gesture scripts against a Mixer on
// a virtual clock, for reproducible exports and tests:
//
//	{"width": 300, "height": 300, "steps": [
//	  {"action": "add", "url": "a.png"},
//	  {"action": "drag", "fromX": 150, "fromY": 150, "toX": 200, "toY": 180, "steps": 5},
//	  {"action": "save", "label": "moved"}
//	]}
//
// # Configuration
//
// [DefaultConfig] holds the built-in values. [LoadConfig] layers a TOML file
// and PICMIX_* environment variables over them and validates the result.
package picmix
