package view

import (
	"image"
	"strconv"
	"strings"

	"github.com/soocke/region-cropper-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const noRegion = "<none>"

// RegionPanel lists the regions, previews the selected crop and offers rename.
type RegionPanel interface {
	SetRegions(names []string, selected int)
	ShowPreview(img image.Image, caption string)
	ClearPreview()
}

// RegionHandlers are invoked from panel widgets on the Tk thread.
type RegionHandlers struct {
	Select func(index int) // -1 deselects
	Rename func(name string)
}

type regionPanel struct {
	list    *TComboboxWidget
	name    *TextWidget
	preview *LabelWidget
	caption *LabelWidget
	photo   *Img
	names   []string
}

// NewRegionPanel builds the panel starting at row and returns the next free row.
// Layout: list and rename share a row; the preview spans the columns below.
func NewRegionPanel(row int, h RegionHandlers) (RegionPanel, int) {
	v := &regionPanel{}
	v.list = TCombobox(Values([]string{noRegion}), Width(24))
	Grid(v.list, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	v.list.Current(0)
	Bind(v.list, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(v.list.Current(nil))
		if err != nil || h.Select == nil {
			return
		}
		h.Select(idx - 1)
	}))
	v.name = Text(Height(1), Width(18))
	Grid(v.name, Row(row), Column(2), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rename := Button(Txt("Rename"), Command(func() {
		if h.Rename == nil {
			return
		}
		if name := strings.TrimSpace(strings.Join(v.name.Get("1.0", END), "")); name != "" {
			h.Rename(name)
		}
	}))
	Grid(rename, Row(row), Column(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	v.photo = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 160, 90)))))
	v.preview = Label(Image(v.photo), Borderwidth(1), Relief("sunken"))
	Grid(v.preview, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	row++
	v.caption = Label(Txt("No region selected"), Anchor("w"))
	Grid(v.caption, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"))
	row++
	return v, row
}

func (v *regionPanel) SetRegions(names []string, selected int) {
	if v.list == nil {
		return
	}
	v.names = append([]string{noRegion}, names...)
	v.list.Configure(Values(v.names))
	if selected < 0 || selected >= len(names) {
		v.list.Current(0)
		return
	}
	v.list.Current(selected + 1)
	v.name.Delete("1.0", END)
	v.name.Insert("1.0", names[selected])
}

func (v *regionPanel) ShowPreview(img image.Image, caption string) {
	if v.preview == nil || img == nil {
		return
	}
	data := images.EncodePNG(img)
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(data))
	v.preview.Configure(Image(v.photo))
	v.caption.Configure(Txt(caption))
}

func (v *regionPanel) ClearPreview() {
	if v.preview == nil {
		return
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 160, 90)))))
	v.preview.Configure(Image(v.photo))
	v.caption.Configure(Txt("No region selected"))
	v.name.Delete("1.0", END)
}
