package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// BlockType tags a ContentBlock variant.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockListing   BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockFigure    BlockType = "figure"
	BlockRaw       BlockType = "raw"
)

// ContentBlock is one structurally-typed unit of article content. Order is
// zero-based document order and load-bearing: consumers render blocks in
// this sequence. Blocks are created once per extraction and replaced
// wholesale on re-extraction, never edited in place.
//
// Which fields are populated depends on Type:
//
//	heading    Level, Text
//	paragraph  HTML
//	list       Ordered, Items
//	quote      HTML
//	figure     Src, Alt, Caption
//	raw        HTML
type ContentBlock struct {
	Type    BlockType `json:"type"`
	Order   int       `json:"order"`
	Level   string    `json:"level,omitempty"`
	Text    string    `json:"text,omitempty"`
	HTML    string    `json:"html,omitempty"`
	Ordered bool      `json:"ordered,omitempty"`
	Items   []string  `json:"items,omitempty"`
	Src     string    `json:"src,omitempty"`
	Alt     string    `json:"alt,omitempty"`
	Caption string    `json:"caption,omitempty"`
}

// BlockList stores an ordered block sequence in a PostgreSQL JSONB column.
// It implements sql.Scanner and driver.Valuer.
type BlockList []ContentBlock

// Scan implements the sql.Scanner interface.
func (b *BlockList) Scan(value any) error {
	if value == nil {
		*b = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return errors.New("unsupported type for BlockList")
	}

	if len(data) == 0 {
		*b = BlockList{}
		return nil
	}

	return json.Unmarshal(data, b)
}

// Value implements the driver.Valuer interface.
func (b BlockList) Value() (driver.Value, error) {
	if len(b) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(b)
}
