// Package generate builds test animations programmatically. Everything is
// issued through the command layer so a generated project has a fully
// undoable history, and the effects layer is locked up front to exercise the
// programmatic path: generation is not a UI gesture, so layer locks do not
// apply to it.
package generate

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/editor"
	"github.com/ivlev/animstudio/internal/history"
	"github.com/ivlev/animstudio/internal/project"
)

const (
	ballRadius  = 40.0
	restitution = 0.6
	maxBounces  = 5
)

// BouncingBall builds the classic squash-and-stretch demo: a ball dropping
// onto a ground line with decaying bounces, plus a shadow that widens and
// fades as the ball rises. Falls ease in (gravity), rises ease out.
func BouncingBall(frameRate, totalFrames int) (*editor.Editor, error) {
	p := project.New("Bouncing Ball", frameRate, totalFrames)
	e := editor.New(p, 0)

	ballLayer := p.Layers()[0]
	ballLayer.Name = "Ball"

	shadowLayer := project.NewLayer("Effects")
	if err := e.Apply(&history.AddLayer{Layer: shadowLayer, Index: 1}); err != nil {
		return nil, err
	}
	// Locked immediately: the rest of the build proves programmatic
	// mutations ignore the lock.
	if err := e.Apply(&history.SetLayerLocked{LayerID: shadowLayer.ID, Locked: true}); err != nil {
		return nil, err
	}

	centerX := float64(p.CanvasWidth) / 2
	groundY := float64(p.CanvasHeight) - 200
	startY := 150.0
	initialHeight := groundY - startY
	shadowY := groundY + ballRadius + 10

	ballColor := colorful.Hsv(14, 0.85, 0.95)
	strokeColor := colorful.Hsv(10, 0.92, 0.70)

	ball := project.NewObject("ball", project.Ellipse{RadiusX: ballRadius, RadiusY: ballRadius})
	ball.Position = anim.Vec2{X: centerX, Y: startY}
	ball.Fill = anim.Color{R: ballColor.R, G: ballColor.G, B: ballColor.B, A: 1}
	ball.Stroke = anim.Color{R: strokeColor.R, G: strokeColor.G, B: strokeColor.B, A: 1}
	ball.StrokeWidth = 2
	if err := e.Apply(&history.AddObject{LayerID: ballLayer.ID, Object: ball, Index: -1}); err != nil {
		return nil, err
	}

	shadow := project.NewObject("shadow", project.Ellipse{RadiusX: ballRadius * 1.2, RadiusY: ballRadius * 0.25})
	shadow.Position = anim.Vec2{X: centerX, Y: shadowY}
	shadow.Fill = anim.Color{R: 0.1, G: 0.1, B: 0.1, A: 0.5}
	shadow.StrokeWidth = 0
	if err := e.Apply(&history.AddObject{LayerID: shadowLayer.ID, Object: shadow, Index: -1}); err != nil {
		return nil, err
	}

	// Free-fall time scales with the square root of drop height, so frame
	// spacing per segment follows sqrt of each bounce height.
	var bounceHeights []float64
	height := initialHeight
	for i := 0; i < maxBounces; i++ {
		height *= restitution
		if height < 10 {
			break
		}
		bounceHeights = append(bounceHeights, height)
	}

	segments := []float64{math.Sqrt(initialHeight)}
	for _, h := range bounceHeights {
		segments = append(segments, math.Sqrt(h), math.Sqrt(h))
	}
	totalTime := 0.0
	for _, s := range segments {
		totalTime += s
	}
	framesAvailable := float64(totalFrames - 2)

	type key struct {
		frame  int
		y      float64
		scale  anim.Vec2
		easing anim.Easing
	}
	keys := []key{{frame: 0, y: startY, scale: anim.Vec2{X: 0.92, Y: 1.08}, easing: anim.EasingIn}}

	accumulated := 0.0
	bounce := 0
	goingUp := false
	for _, seg := range segments {
		accumulated += seg / totalTime * framesAvailable
		frame := int(math.Round(accumulated)) + 1
		if frame > totalFrames-1 {
			frame = totalFrames - 1
		}
		if !goingUp {
			squash := 0.3 * math.Max(1-float64(bounce)*0.12, 0.1)
			keys = append(keys, key{frame: frame, y: groundY, scale: anim.Vec2{X: 1 + squash, Y: 1 - squash}, easing: anim.EasingOut})
			goingUp = true
		} else {
			stretch := 0.08 * math.Max(1-float64(bounce)*0.15, 0.02)
			keys = append(keys, key{frame: frame, y: groundY - bounceHeights[bounce], scale: anim.Vec2{X: 1 - stretch, Y: 1 + stretch}, easing: anim.EasingIn})
			bounce++
			goingUp = false
		}
	}
	if keys[len(keys)-1].frame < totalFrames-1 {
		keys = append(keys, key{frame: totalFrames - 1, y: groundY, scale: anim.Vec2{X: 1, Y: 1}, easing: anim.EasingLinear})
	}

	for _, k := range keys {
		if err := e.Apply(&history.SetKeyframe{
			ObjectID: ball.ID,
			Property: anim.PropPosition,
			Keyframe: anim.Keyframe{Frame: k.frame, Value: anim.Vec(centerX, k.y), Easing: k.easing},
		}); err != nil {
			return nil, err
		}
		if err := e.Apply(&history.SetKeyframe{
			ObjectID: ball.ID,
			Property: anim.PropScale,
			Keyframe: anim.Keyframe{Frame: k.frame, Value: anim.Vec(k.scale.X, k.scale.Y), Easing: k.easing},
		}); err != nil {
			return nil, err
		}

		// Shadow tracks the ball height: small and dark at contact, wide
		// and faint at the peak. Despite the locked layer these commands
		// succeed because generation bypasses the intent path.
		closeness := 1 - (groundY-k.y)/initialHeight
		shadowScale := 0.6 + 0.4*closeness
		shadowAlpha := 0.15 + 0.35*closeness
		if err := e.Apply(&history.SetKeyframe{
			ObjectID: shadow.ID,
			Property: anim.PropScale,
			Keyframe: anim.Keyframe{Frame: k.frame, Value: anim.Vec(shadowScale, shadowScale), Easing: k.easing},
		}); err != nil {
			return nil, err
		}
		if err := e.Apply(&history.SetKeyframe{
			ObjectID: shadow.ID,
			Property: anim.PropFill,
			Keyframe: anim.Keyframe{Frame: k.frame, Value: anim.Rgba(0.1, 0.1, 0.1, shadowAlpha), Easing: k.easing},
		}); err != nil {
			return nil, err
		}
	}

	return e, nil
}
