package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/tiledesigner/brush"
	"github.com/milk9111/tiledesigner/render"
)

// leftPanel is the control panel beside the canvas plus its stateful helpers.
type leftPanel struct {
	Container *widget.Container
	modes     *modesSection
	tiles     *tilesSection
	confirm   *confirmDialog
	brushText *widget.Text
	status    *widget.Text
}

func (p *leftPanel) setBrush(b brush.Brush) {
	label := b.Group + " / " + b.ID
	if b.Name != "" {
		label += " (" + b.Name + ")"
	}
	p.brushText.Label = "Brush: " + label
}

func (p *leftPanel) setStatus(s string) {
	p.status.Label = s
}

func (p *leftPanel) setCatalog(c *render.Catalog) {
	p.tiles.setCatalog(c)
}

func buildUI(g *Game) (*ebitenui.UI, *leftPanel) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newDesignerTheme(&fontFace)
	theme := ui.PrimaryTheme

	panel := &leftPanel{
		Container: widget.NewContainer(
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(g.cfg.Window.PanelWidth, g.cfg.Window.Height),
			),
			widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
			widget.ContainerOpts.Layout(
				widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionVertical),
					widget.RowLayoutOpts.Spacing(8),
				),
			),
		),
	}
	panel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}

	panel.modes = addModesSection(panel.Container, theme, &fontFace, g.toggle)
	panel.tiles = addTilesSection(panel.Container, &fontFace, g.renderer.Catalog())

	panel.brushText = widget.NewText(
		widget.TextOpts.Text("Brush: none", &fontFace, color.White),
	)
	panel.Container.AddChild(panel.brushText)

	addActionsSection(panel.Container, theme, &fontFace, g)

	panel.status = widget.NewText(
		widget.TextOpts.Text("", &fontFace, color.Gray{Y: 200}),
	)
	panel.Container.AddChild(panel.status)

	panel.confirm = newConfirmDialog(theme, &fontFace, g.confirmDeleteAll)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel.Container)
	root.AddChild(panel.confirm.Overlay)
	ui.Container = root
	return ui, panel
}

// addActionsSection adds the level buttons and one button per loaded macro.
func addActionsSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) {
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Level", fontFace, labelColor),
	))
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	for _, a := range []struct {
		label string
		fn    func()
	}{
		{"Save", g.save},
		{"Copy", g.copyLevel},
		{"Clear", g.requestDeleteAll},
	} {
		row.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				a.fn()
			}),
		))
	}
	parent.AddChild(row)

	names := g.runner.Names()
	if len(names) == 0 {
		return
	}
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Macros", fontFace, labelColor),
	))
	for _, name := range names {
		parent.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.runMacro(name)
			}),
		))
	}
}
