package fontcolor

import (
	"fmt"

	"go.uber.org/zap"

	"fontcolor/color"
	"fontcolor/model"
)

// Command sets font color on text ranges of document blocks.
type Command struct {
	log    *zap.Logger
	schema *model.Schema
	strict bool
}

// IsEnabled reports whether text of the block may be colored.
func (c *Command) IsEnabled(doc *model.Document, block int) bool {
	blk, err := doc.Block(block)
	if err != nil {
		return false
	}
	return c.schema.CheckAttribute([]string{blk.Name, model.ItemText}, Attribute)
}

// Execute colors text in [start, end) offsets of the block, empty value
// removes color. Value is stored normalized.
func (c *Command) Execute(doc *model.Document, block, start, end int, value string) error {
	blk, err := doc.Block(block)
	if err != nil {
		return err
	}
	if !c.schema.CheckAttribute([]string{blk.Name, model.ItemText}, Attribute) {
		return fmt.Errorf("%s is not allowed on text in %q", Attribute, blk.Name)
	}

	if value != "" {
		value = color.Normalize(value)
		if c.strict {
			if _, err := color.Parse(value); err != nil {
				return err
			}
		}
	}

	if err := blk.SetAttribute(start, end, Attribute, value); err != nil {
		return err
	}
	c.log.Debug("Font color applied", zap.Int("block", block), zap.Int("start", start), zap.Int("end", end), zap.String("value", value))
	return nil
}

// Value returns color of the character at offset of the block.
func (c *Command) Value(doc *model.Document, block, offset int) (string, bool) {
	blk, err := doc.Block(block)
	if err != nil {
		return "", false
	}
	return blk.AttributeAt(offset, Attribute)
}
