// scanraster - terminal software rasterizer viewer.
//
// Controls:
//
//	W/A/S/D     - walk forward/back/strafe, in the camera's ground plane
//	Q/E         - move down/up
//	Mouse drag  - look around (captured while the left button is held)
//	Esc / ctrl+c - quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanraster/pkg/math3d"
	"github.com/taigrr/scanraster/pkg/models"
	"github.com/taigrr/scanraster/pkg/render"
)

var (
	meshPath    = flag.String("mesh", "", "Path to a mesh (.obj/.glb/.gltf); defaults to a procedural sphere")
	texturePath = flag.String("texture", "", "Path to a texture image (PNG/JPG); defaults to a procedural checkerboard")
	targetFPS   = flag.Int("fps", 60, "Target frame rate")
	bgColor     = flag.String("bg", "20,20,28", "Background color (R,G,B)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scanraster: %v\n", err)
		os.Exit(1)
	}
}

// lookSpring smooths a raw mouse-delta axis into a decaying angular
// velocity, so camera rotation settles instead of snapping frame to frame.
type lookSpring struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newLookSpring(fps int) lookSpring {
	return lookSpring{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

func (s *lookSpring) kick(delta float64) {
	s.velocity += delta
}

func (s *lookSpring) update() float64 {
	s.velocity, s.accel = s.spring.Update(s.velocity, s.accel, 0)
	return s.velocity
}

func run() error {
	var bgR, bgG, bgB int
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	background := render.RGB(bgR, bgG, bgB)

	mesh, texture, label, err := loadScene()
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h") // any-event mouse, SGR extended mode

	raster := render.NewRaster(cols, rows*2)
	renderer := render.NewRenderer(raster)
	renderer.EnableDepthTest(true)

	camera := render.NewCamera(false, math.Pi/3, float64(cols)/float64(rows*2), 0.1, math3d.V3(0, 0, 4))

	lights := []render.LightSource{
		render.NewDirectionalLight(math3d.V3(1, 1, 1), math3d.V3(-0.4, -1, -0.3)),
		render.NewAmbientLight(math3d.V3(0.15, 0.15, 0.18)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	yawSpring := newLookSpring(*targetFPS)
	pitchSpring := newLookSpring(*targetFPS)

	var mouseDown bool
	var lastMouseX, lastMouseY int
	move := struct{ forward, strafe, vertical float64 }{}

	const moveSpeed = 3.0  // units/second
	const mouseSens = 0.004

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				raster = render.NewRaster(cols, rows*2)
				renderer = render.NewRenderer(raster)
				renderer.EnableDepthTest(true)
				camera.SetAspect(float64(cols) / float64(rows*2))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					move.forward = 1
				case ev.MatchString("s"):
					move.forward = -1
				case ev.MatchString("a"):
					move.strafe = -1
				case ev.MatchString("d"):
					move.strafe = 1
				case ev.MatchString("q"):
					move.vertical = -1
				case ev.MatchString("e"):
					move.vertical = 1
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("s"):
					move.forward = 0
				case ev.MatchString("a"), ev.MatchString("d"):
					move.strafe = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					move.vertical = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					yawSpring.kick(float64(dx) * mouseSens)
					pitchSpring.kick(float64(-dy) * mouseSens)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()
	var spin float64
	var fps float64
	var fpsFrames int
	fpsClock := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		camera.RotateYaw(yawSpring.update() * dt)
		camera.RotatePitch(pitchSpring.update() * dt)

		if move.forward != 0 || move.strafe != 0 {
			delta := camera.Front().Scale(move.forward * moveSpeed * dt).
				Add(camera.Right().Scale(move.strafe * moveSpeed * dt))
			camera.Translate(delta)
		}
		if move.vertical != 0 {
			camera.Translate(math3d.V3(0, move.vertical*moveSpeed*dt, 0))
		}

		spin += 0.3 * dt
		transform := math3d.NewCombined(math3d.NewRotate(math3d.AxisY, spin))

		renderer.ClearColorDepth(background)
		renderer.RenderMesh(mesh, texture, transform, camera, lights, render.LightingDiffuse)
		renderer.FogPostProcess(15, 40, background)

		raster.Draw(term, uv.Rectangle{Max: uv.Position{X: cols, Y: rows}})
		term.Display()

		fpsFrames++
		if elapsed := time.Since(fpsClock); elapsed >= time.Second {
			fps = float64(fpsFrames) / elapsed.Seconds()
			fpsFrames = 0
			fpsClock = time.Now()
		}
		fmt.Fprintf(os.Stdout, "\x1b[1;1H\x1b[2K %s  %d tris  %.0f fps", label, mesh.TriangleCount(), fps)

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// loadScene resolves the -mesh/-texture flags into a Mesh, a Texture,
// and a short label for the status line, falling back to a procedural
// sphere and checkerboard when no paths are given.
func loadScene() (*models.Mesh, *render.Texture, string, error) {
	var mesh *models.Mesh
	var embedded *render.Texture
	label := "sphere"

	if *meshPath == "" {
		mesh = models.GenerateUVSphere(16, 24, models.KeepNormals)
	} else {
		label = filepath.Base(*meshPath)
		switch strings.ToLower(filepath.Ext(*meshPath)) {
		case ".obj":
			m, err := models.LoadOBJ(*meshPath, models.KeepNormals)
			if err != nil {
				return nil, nil, "", fmt.Errorf("load mesh: %w", err)
			}
			mesh = m
		case ".glb", ".gltf":
			m, img, err := models.LoadGLBWithTexture(*meshPath)
			if err != nil {
				return nil, nil, "", fmt.Errorf("load mesh: %w", err)
			}
			mesh = m
			if img != nil {
				embedded = render.TextureFromImage(img)
			}
		default:
			return nil, nil, "", fmt.Errorf("unsupported mesh format: %s", *meshPath)
		}
	}

	texture := embedded
	if *texturePath != "" {
		t, err := render.LoadTexture(*texturePath)
		if err != nil {
			return nil, nil, "", fmt.Errorf("load texture: %w", err)
		}
		texture = t
	}
	if texture == nil {
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(210, 210, 210), render.RGB(90, 90, 90))
	}

	return mesh, texture, label, nil
}
