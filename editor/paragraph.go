package editor

import (
	"fontcolor/convert"
	"fontcolor/model"
)

const (
	ParagraphPluginName = "Paragraph"
	ParagraphElement    = "paragraph"
)

// Paragraph adds paragraph block converted to <p>. It is also the block
// receiving text found outside of blocks in the input.
type Paragraph struct{}

func (Paragraph) Name() string {
	return ParagraphPluginName
}

func (Paragraph) Init(ed *Editor) error {
	if err := ed.Schema().Register(ParagraphElement, model.ItemDefinition{InheritAllFrom: model.ItemBlock}); err != nil {
		return err
	}
	if err := ed.Conversion().ElementToElement(convert.ElementToElement{Model: ParagraphElement, View: "p"}); err != nil {
		return err
	}
	ed.Conversion().SetDefaultBlock(ParagraphElement)
	return nil
}
