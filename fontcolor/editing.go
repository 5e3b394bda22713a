package fontcolor

import (
	"slices"

	"go.uber.org/zap"

	"fontcolor/color"
	"fontcolor/config"
	"fontcolor/convert"
	"fontcolor/editor"
	"fontcolor/model"
)

// Editing is the editor plugin. In strict mode colors which do not follow
// CSS color grammar are dropped from input and rejected by the command,
// otherwise any value is accepted after normalization.
type Editing struct {
	log     *zap.Logger
	strict  bool
	options []ColorOption
	command *Command
}

// NewEditing creates plugin from configuration, nil means default palette
// in lenient mode.
func NewEditing(cfg *config.FontColorConfig, log *zap.Logger) *Editing {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Editing{log: log.Named("font-color")}
	if cfg == nil {
		e.options = NormalizeOptions(DefaultColors())
	} else {
		e.strict = cfg.Strict
		e.options = NormalizeOptions(cfg.Colors)
	}
	return e
}

func (e *Editing) Name() string {
	return PluginName
}

func (e *Editing) Init(ed *editor.Editor) error {
	schema := ed.Schema()
	if err := schema.Extend(model.ItemText, model.ItemDefinition{AllowAttributes: []string{Attribute}}); err != nil {
		return err
	}
	schema.SetAttributeProperties(Attribute, model.AttributeProperties{IsFormatting: true, CopyOnEnter: true})

	if err := ed.Conversion().AttributeToStyle(convert.AttributeToStyle{
		Model:    Attribute,
		Element:  ViewElement,
		Style:    StyleProperty,
		Upcast:   e.upcast,
		Downcast: color.Format,
	}); err != nil {
		return err
	}

	e.command = &Command{log: e.log, schema: schema, strict: e.strict}
	return nil
}

func (e *Editing) upcast(value string) (string, bool) {
	v := color.Normalize(value)
	if v == "" {
		return "", false
	}
	if e.strict {
		if _, err := color.Parse(v); err != nil {
			e.log.Warn("Dropping invalid color", zap.String("value", value), zap.Error(err))
			return "", false
		}
	}
	return v, true
}

// Strict reports whether plugin validates colors.
func (e *Editing) Strict() bool {
	return e.strict
}

// Options returns normalized palette.
func (e *Editing) Options() []ColorOption {
	return slices.Clone(e.options)
}

// Command returns font color command, nil before plugin is initialized.
func (e *Editing) Command() *Command {
	return e.command
}
