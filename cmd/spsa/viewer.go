package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/animfold/anim"
	"github.com/milk9111/animfold/animset"
	"github.com/milk9111/animfold/common"
	"github.com/milk9111/animfold/render"
	"github.com/milk9111/animfold/script"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
)

const (
	screenW = 512
	screenH = 512
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type viewer struct {
	eng     *anim.Engine
	loader  *animset.Loader
	tex     *render.Textures
	watcher *animset.Watcher

	set    anim.SetID
	h      anim.Handle
	scale  float64
	speed  float64
	frame  common.Frame
	tinted bool

	listener   *script.Listener
	listenerID anim.ListenerID

	shake    *gween.Tween
	shakeOff float32
	lastCmd  string
}

func newViewer(eng *anim.Engine, loader *animset.Loader, tex *render.Textures, set anim.SetID, scale float64) (*viewer, error) {
	h, err := eng.Generate(anim.NewAnimatorDesc(set))
	if err != nil {
		return nil, err
	}
	v := &viewer{
		eng:        eng,
		loader:     loader,
		tex:        tex,
		set:        set,
		h:          h,
		scale:      scale,
		speed:      1,
		listenerID: anim.InvalidListenerID,
	}
	if err := v.attachScript(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) spec() *animset.SetSpec {
	if s := v.loader.Spec(v.eng.Library().Get(v.set)); s != nil {
		return s
	}
	return &animset.SetSpec{}
}

func (v *viewer) attachScript() error {
	name := v.spec().Script
	if name == "" {
		return nil
	}
	l, err := script.Load(name, v.spec())
	if err != nil {
		return err
	}
	if v.listenerID != anim.InvalidListenerID {
		v.eng.Off(v.h, v.listenerID)
	}
	v.listener = l
	v.listenerID = v.eng.On(v.h, l.Func())
	return nil
}

func (v *viewer) Update() error {
	v.reload()
	v.input()

	v.eng.Tick(common.NewFramePacket(v.frame))
	v.frame++

	if v.listener != nil {
		for _, cmd := range v.listener.Drain() {
			v.apply(cmd)
		}
	}

	if v.shake != nil {
		off, done := v.shake.Update(float32(common.FixedStep))
		v.shakeOff = off
		if done {
			v.shake = nil
			v.shakeOff = 0
		}
	}
	return nil
}

func (v *viewer) reload() {
	if v.watcher == nil {
		return
	}
	got := animset.DrainReloads(v.watcher, v.eng.Library(), v.eng)
	for _, name := range got.Scripts {
		if name != v.spec().Script {
			continue
		}
		if err := v.attachScript(); err != nil {
			anim.Logger().Warn("spsa: script reload failed, keeping previous", "script", name, "err", err)
		}
	}
}

func (v *viewer) input() {
	var dir cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y--
	}

	walk, hasWalk := v.spec().TagID("walk")
	idle, _ := v.spec().TagID("idle")
	moving := dir.X != 0 || dir.Y != 0
	switch {
	case moving && hasWalk:
		v.eng.PlayVector(v.h, walk, dir, anim.PlaybackDesc{})
	case moving:
		v.eng.SetDirVector(v.h, dir)
	case hasWalk && v.eng.PlayingTag(v.h, walk):
		v.eng.Play(v.h, idle, anim.PlaybackDesc{})
	}

	names := v.spec().TagNames()
	for i, key := range digitKeys {
		if i < len(names) && inpututil.IsKeyJustPressed(key) {
			tag, _ := v.spec().TagID(names[i])
			v.eng.Play(v.h, tag, anim.PlaybackDesc{Flags: anim.PlaybackRestart})
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.eng.Play(v.h, v.eng.AnimTag(v.h), anim.PlaybackDesc{Flags: anim.PlaybackRestart})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		v.setSpeed(v.speed * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		v.setSpeed(v.speed / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.tinted = !v.tinted
		if v.tinted {
			v.eng.Colorize(v.h, []color.RGBA{colornames.White, colornames.Tomato})
			v.eng.SetColorEase(v.h, ease.InOutQuad)
		} else {
			v.eng.Colorize(v.h, nil)
		}
	}
}

func (v *viewer) setSpeed(speed float64) {
	v.speed = common.Clamp(speed, 0.125, 8)
	v.eng.SetSpeed(v.h, v.speed)
}

// apply runs a command queued by the set's script.
func (v *viewer) apply(cmd script.Command) {
	v.lastCmd = formatCommand(cmd)
	switch cmd.Name {
	case "play":
		if len(cmd.Args) == 0 {
			return
		}
		name, _ := cmd.Args[0].(string)
		tag, ok := v.spec().TagID(name)
		if !ok {
			anim.Logger().Warn("spsa: script played unknown tag", "tag", name)
			return
		}
		v.eng.Play(cmd.Animator, tag, anim.PlaybackDesc{Flags: anim.PlaybackRestart})
	case "damage":
		v.shake = gween.New(6, 0, 0.3, ease.OutQuad)
	default:
		anim.Logger().Info("spsa: script command", "cmd", cmd.Name, "args", cmd.Args)
	}
}

func formatCommand(cmd script.Command) string {
	parts := make([]string, 0, len(cmd.Args))
	for _, a := range cmd.Args {
		parts = append(parts, fmt.Sprint(a))
	}
	return cmd.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	x := float64(screenW)/2 + float64(v.shakeOff)
	y := float64(screenH) * 0.6
	render.Draw(screen, v.tex, v.eng, v.h, x, y, v.scale)

	spec := v.spec()
	hud := fmt.Sprintf(
		"set %s  tag %s  dir %s  frame %d  flip %v\nspeed %.3gx  progress %.2f  t %.2fs\n%s\n[arrows] move [1-9] tags [r] restart [+/-] speed [c] tint",
		v.set, spec.TagName(v.eng.AnimTag(v.h)), v.eng.Dir(v.h), v.eng.AnimFrame(v.h), v.eng.FlippedX(v.h),
		v.speed, v.eng.Progress(v.h), v.eng.Time(), v.lastCmd,
	)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}
