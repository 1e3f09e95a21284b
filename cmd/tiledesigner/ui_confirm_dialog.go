package main

import (
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// confirmTimeout closes an unanswered confirmation.
const confirmTimeout = 3 * time.Second

type confirmDialog struct {
	Overlay  *widget.Container
	deadline time.Time
}

func newConfirmDialog(theme *widget.Theme, fontFace *text.Face, onConfirm func()) *confirmDialog {
	c := &confirmDialog{}

	c.Overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	c.Overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 110),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	question := widget.NewLabel(
		widget.LabelOpts.Text("Delete everything on the surface?", fontFace, &widget.LabelColor{Idle: color.Black, Disabled: color.Gray{Y: 140}}),
	)

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	yesBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Delete all", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			c.hide()
			if onConfirm != nil {
				onConfirm()
			}
		}),
	)
	noBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Cancel", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			c.hide()
		}),
	)
	buttonsRow.AddChild(yesBtn)
	buttonsRow.AddChild(noBtn)

	dialog.AddChild(question)
	dialog.AddChild(buttonsRow)
	c.Overlay.AddChild(dialog)
	return c
}

func (c *confirmDialog) open(now time.Time) {
	c.deadline = now.Add(confirmTimeout)
	c.Overlay.GetWidget().Visibility = widget.Visibility_Show
}

func (c *confirmDialog) hide() {
	c.deadline = time.Time{}
	c.Overlay.GetWidget().Visibility = widget.Visibility_Hide
}

func (c *confirmDialog) visible() bool {
	return c.Overlay.GetWidget().Visibility == widget.Visibility_Show
}

// tick hides the dialog once its deadline has passed.
func (c *confirmDialog) tick(now time.Time) {
	if c.visible() && !c.deadline.IsZero() && now.After(c.deadline) {
		c.hide()
	}
}
