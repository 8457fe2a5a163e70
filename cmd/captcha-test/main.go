// CAPTCHA test server
package main

import (
	"bytes"
	"image/png"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/kyiku/captcha-engine/internal/assets"
	"github.com/kyiku/captcha-engine/internal/bridge"
	"github.com/kyiku/captcha-engine/internal/captcha"
	"github.com/kyiku/captcha-engine/internal/config"
	"github.com/kyiku/captcha-engine/internal/handler"
	"github.com/kyiku/captcha-engine/internal/random"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const testPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>CAPTCHA test</title></head>
<body>
<h2>Code</h2>
<input id="text" value="AB12"> <button onclick="code()">generate</button><br>
<img id="code">
<h2>Slider</h2>
<button onclick="slider()">generate</button> <span id="answer"></span><br>
<div style="position:relative;width:360px;height:140px">
  <img id="bg" style="position:absolute;left:0;top:0">
  <img id="piece" style="position:absolute;left:0;top:0">
</div>
<input id="slide" type="range" min="0" max="310" value="0" style="width:360px"
  oninput="document.getElementById('piece').style.left = this.value + 'px'">
<script>
async function code() {
  const res = await fetch('/api/captcha/code', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({text: document.getElementById('text').value}),
  });
  document.getElementById('code').src = URL.createObjectURL(await res.blob());
}
async function slider() {
  const res = await (await fetch('/api/captcha/slider')).json();
  if (res.error) { alert(res.message); return; }
  document.getElementById('bg').src = 'data:image/png;base64,' + res.background;
  const piece = document.getElementById('piece');
  piece.src = 'data:image/png;base64,' + res.cutout;
  piece.style.top = res.y + 'px';
  piece.style.left = '0px';
  document.getElementById('slide').value = 0;
  document.getElementById('answer').textContent = 'x=' + res.x + ' y=' + res.y;
}
</script>
</body>
</html>`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	provider := assets.Embedded()
	if cfg.AssetDir != "" {
		provider = assets.Chain(assets.Dir(cfg.AssetDir), provider)
	}
	gen := captcha.NewGenerator(assets.Cached(provider), nil)
	if err := gen.Warmup(); err != nil {
		log.Fatal("Failed to load captcha assets:", err)
	}

	pool := bridge.NewPool(nil)
	if cfg.BackgroundDir != "" {
		if _, err := pool.LoadFromDir(cfg.BackgroundDir); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	if pool.Len() == 0 {
		// Use generated backgrounds when no directory is given
		rng := random.NewDefault()
		for i := 0; i < 4; i++ {
			pool.Load(demoBackground(rng))
		}
	}
	log.Printf("Background pool: %d images", pool.Len())

	b := bridge.New(gen)

	// Write sample files and exit when SAMPLE_DIR is set
	if dir := os.Getenv("SAMPLE_DIR"); dir != "" {
		if err := writeSamples(b, pool, dir); err != nil {
			log.Fatal("Failed to write samples:", err)
		}
		return
	}

	captchaHandler := handler.NewCaptchaHandler(b, pool)

	// Setup Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, testPage)
	})

	// CAPTCHA routes
	e.POST("/api/captcha/code", captchaHandler.Code)
	e.POST("/api/captcha/slider", captchaHandler.Slider)
	e.GET("/api/captcha/slider", captchaHandler.RandomSlider)

	// Health check
	e.GET("/health", handler.NewHealthHandler(gen.Warmup, pool).Check)

	log.Println("Starting CAPTCHA test server on :8080")
	log.Println("Open http://localhost:8080/")
	log.Fatal(e.Start(":8080"))
}

// writeSamples writes captcha.jpg, slider.png and slider_background.png to dir.
func writeSamples(b *bridge.Bridge, pool *bridge.Pool, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	code, err := b.CodeCaptcha("AB12")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "captcha.jpg"), code, 0o644); err != nil {
		return err
	}

	slider, err := b.RandomSlider(pool)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "slider.png"), slider.Cutout, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "slider_background.png"), slider.Background, 0o644); err != nil {
		return err
	}

	log.Printf("Wrote samples to %s (answer x=%d y=%d)", dir, slider.X, slider.Y)
	return nil
}

// demoBackground draws a gradient with random filled circles as a PNG.
func demoBackground(rng *random.Generator) []byte {
	dc := gg.NewContext(captcha.SliderWidth, captcha.SliderHeight)

	grad := gg.NewLinearGradient(0, 0, captcha.SliderWidth, captcha.SliderHeight)
	grad.AddColorStop(0, captcha.PickColor(rng))
	grad.AddColorStop(1, captcha.PickColor(rng))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, captcha.SliderWidth, captcha.SliderHeight)
	dc.Fill()

	for i, n := 0, rng.Range(20, 40); i < n; i++ {
		c := captcha.PickColor(rng)
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), rng.Range(60, 200))
		dc.DrawCircle(float64(rng.Intn(captcha.SliderWidth)), float64(rng.Intn(captcha.SliderHeight)), float64(rng.Range(10, 60)))
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		log.Fatal("Failed to encode background:", err)
	}
	return buf.Bytes()
}
