package dialog

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Dialog window geometry and style.
const (
	dialogWidth    = 440
	dialogHeight   = 120
	dialogFontSize = 16.0
	dialogPadding  = 16.0
)

var (
	dialogBackground = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	dialogForeground = color.RGBA{R: 16, G: 16, B: 16, A: 255}
)

// errDialogDone stops the ebiten loop once the user has answered.
var errDialogDone = errors.New("dialog done")

func loadDialogFace() (text.Face, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse dialog font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: dialogFontSize}, nil
}

func drawLine(screen *ebiten.Image, face text.Face, s string, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(dialogPadding, y)
	op.ColorScale.ScaleWithColor(dialogForeground)
	text.Draw(screen, s, face, op)
}

func runDialog(title string, g ebiten.Game) error {
	ebiten.SetWindowSize(dialogWidth, dialogHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errDialogDone) {
		return fmt.Errorf("dialog window: %w", err)
	}
	return nil
}

// promptGame is the file-name entry window: type a name, Enter accepts,
// Escape cancels.
type promptGame struct {
	face     text.Face
	title    string
	input    []rune
	chars    []rune
	canceled bool
}

func (g *promptGame) Update() error {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if r >= 0x20 {
			g.input = append(g.input, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		return errDialogDone
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.canceled = true
		return errDialogDone
	}
	return nil
}

func (g *promptGame) Draw(screen *ebiten.Image) {
	screen.Fill(dialogBackground)
	drawLine(screen, g.face, g.title, dialogPadding)
	drawLine(screen, g.face, string(g.input)+"_", dialogPadding+2*dialogFontSize)
}

func (g *promptGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return dialogWidth, dialogHeight
}

// PromptFileName opens the file-name entry window and blocks until it
// closes. Canceling, by Escape or the window close button, yields an
// empty name and a nil error.
func PromptFileName() (string, error) {
	face, err := loadDialogFace()
	if err != nil {
		return "", err
	}
	g := &promptGame{
		face:  face,
		title: "Enter a file name ending in .jpg or .png:",
	}
	if err := runDialog("Save drawing", g); err != nil {
		return "", err
	}
	if g.canceled {
		return "", nil
	}
	return string(g.input), nil
}

// messageGame shows one line of text until Enter or Escape dismisses it.
type messageGame struct {
	face text.Face
	msg  string
}

func (g *messageGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errDialogDone
	}
	return nil
}

func (g *messageGame) Draw(screen *ebiten.Image) {
	screen.Fill(dialogBackground)
	drawLine(screen, g.face, g.msg, dialogPadding)
	drawLine(screen, g.face, "Press Enter to continue.", dialogPadding+2*dialogFontSize)
}

func (g *messageGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return dialogWidth, dialogHeight
}

// ShowMessage opens a message window and blocks until it is dismissed.
func ShowMessage(title, msg string) error {
	face, err := loadDialogFace()
	if err != nil {
		return err
	}
	return runDialog(title, &messageGame{face: face, msg: msg})
}
