package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
	"github.com/ivlev/animstudio/internal/scene"
)

func smallProject(t *testing.T) *project.Project {
	t.Helper()
	p := project.New("render", 24, 10)
	p.CanvasWidth = 64
	p.CanvasHeight = 48
	p.Background = anim.Color{R: 0, G: 0, B: 0, A: 1}
	l, _ := p.LayerAt(0)
	o := project.NewObject("box", project.Rectangle{Width: 20, Height: 20})
	o.Position = anim.Vec2{X: 32, Y: 24}
	o.Fill = anim.Color{R: 1, G: 1, B: 1, A: 1}
	o.StrokeWidth = 0
	l.InsertObject(0, o)
	return p
}

func TestFrameDimensionsAndBackground(t *testing.T) {
	p := smallProject(t)
	s, err := scene.BuildFrame(p, 0)
	require.NoError(t, err)

	img := Frame(s)
	bounds := img.Bounds()
	assert.Equal(t, 64, bounds.Dx())
	assert.Equal(t, 48, bounds.Dy())

	// Corner shows the background, center the white box.
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.At(32, 24).(color.RGBA))
}

func TestFrameWithOnionKeepsCurrentOnTop(t *testing.T) {
	p := smallProject(t)
	s, err := scene.BuildFrame(p, 0)
	require.NoError(t, err)
	b := scene.NewBuilder(p)
	ghosts, err := b.OnionSkins(2, scene.DefaultOnion())
	require.NoError(t, err)

	img := FrameWithOnion(s, ghosts)
	// The object is static, so ghosts hide under it and the center stays white.
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.At(32, 24).(color.RGBA))
}

func TestExportFrames(t *testing.T) {
	p := smallProject(t)
	dir := t.TempDir()
	require.NoError(t, ExportFrames(p, dir, 0, 4, 2))

	for frame := 0; frame <= 4; frame++ {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", frame))
		info, err := os.Stat(path)
		require.NoError(t, err, "frame %d missing", frame)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExportFramesRejectsBadRange(t *testing.T) {
	p := smallProject(t)
	err := ExportFrames(p, t.TempDir(), 0, 99, 1)
	assert.ErrorIs(t, err, project.ErrInvalidFrame)
}

func TestSpriteSheetDimensions(t *testing.T) {
	p := smallProject(t)
	// 5 frames, 2 columns: 3 rows.
	sheet, err := SpriteSheet(p, 0, 4, 2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 64, sheet.Bounds().Dx())
	assert.Equal(t, 72, sheet.Bounds().Dy())
}

func TestWritePNG(t *testing.T) {
	p := smallProject(t)
	s, err := scene.BuildFrame(p, 0)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, WritePNG(path, Frame(s)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
