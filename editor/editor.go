// Package editor is a minimal editor shell: it owns the schema, the
// converter registry and the document, and lets plugins extend them. There
// is no selection, undo or view, only data in and out.
package editor

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"fontcolor/convert"
	"fontcolor/model"
)

// Plugin extends editor schema and conversion. Init is called once, in
// order plugins were given to New.
type Plugin interface {
	Name() string
	Init(ed *Editor) error
}

// Editor is not safe for concurrent use.
type Editor struct {
	log     *zap.Logger
	schema  *model.Schema
	conv    *convert.Registry
	proc    *convert.Processor
	doc     *model.Document
	plugins []string
}

// New creates editor with paragraph support and given plugins.
func New(log *zap.Logger, plugins ...Plugin) (*Editor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ed := &Editor{
		log:    log.Named("editor"),
		schema: model.NewSchema(),
		conv:   convert.NewRegistry(),
		doc:    model.NewDocument(),
	}
	ed.proc = convert.NewProcessor(ed.conv, ed.schema, ed.log)

	all := plugins
	if !hasPlugin(plugins, ParagraphPluginName) {
		all = append([]Plugin{Paragraph{}}, plugins...)
	}
	for _, p := range all {
		if ed.HasPlugin(p.Name()) {
			return nil, fmt.Errorf("plugin %q is loaded twice", p.Name())
		}
		if err := p.Init(ed); err != nil {
			return nil, fmt.Errorf("unable to initialize plugin %q: %w", p.Name(), err)
		}
		ed.plugins = append(ed.plugins, p.Name())
		ed.log.Debug("Plugin initialized", zap.String("plugin", p.Name()))
	}
	return ed, nil
}

func hasPlugin(plugins []Plugin, name string) bool {
	return slices.ContainsFunc(plugins, func(p Plugin) bool { return p.Name() == name })
}

// HasPlugin reports whether plugin with given name was initialized.
func (ed *Editor) HasPlugin(name string) bool {
	return slices.Contains(ed.plugins, name)
}

// Plugins returns names of initialized plugins in initialization order.
func (ed *Editor) Plugins() []string {
	return slices.Clone(ed.plugins)
}

func (ed *Editor) Log() *zap.Logger {
	return ed.log
}

func (ed *Editor) Schema() *model.Schema {
	return ed.schema
}

func (ed *Editor) Conversion() *convert.Registry {
	return ed.conv
}

// Model returns current document.
func (ed *Editor) Model() *model.Document {
	return ed.doc
}

// SetData replaces document with one parsed from HTML.
func (ed *Editor) SetData(data string) error {
	doc, err := ed.proc.FromHTML(strings.NewReader(data))
	if err != nil {
		return err
	}
	ed.doc = doc
	return nil
}

// GetData returns document as HTML.
func (ed *Editor) GetData() (string, error) {
	return ed.proc.ToHTML(ed.doc)
}

// ModelData returns document in model data form.
func (ed *Editor) ModelData() string {
	return model.Stringify(ed.doc)
}

// SetModelData replaces document with one parsed from model data, document
// must conform to the schema.
func (ed *Editor) SetModelData(data string) error {
	doc, err := model.Parse(data, ed.schema)
	if err != nil {
		return err
	}
	ed.doc = doc
	return nil
}

// SetModel replaces document, it must conform to the schema.
func (ed *Editor) SetModel(doc *model.Document) error {
	if err := ed.schema.Validate(doc); err != nil {
		return err
	}
	ed.doc = doc
	return nil
}
