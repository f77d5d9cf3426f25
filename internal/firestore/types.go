package firestore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/swipedeck/internal/card"
)

// Value mirrors Firestore's typed value encoding. Exactly one field is set.
type Value struct {
	StringValue  *string  `json:"stringValue,omitempty"`
	IntegerValue *string  `json:"integerValue,omitempty"`
	DoubleValue  *float64 `json:"doubleValue,omitempty"`
	BooleanValue *bool    `json:"booleanValue,omitempty"`
	NullValue    *string  `json:"nullValue,omitempty"`
}

// Document is a stored document with its fields.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// QueryRow is one element of a runQuery response. Document is nil on the
// marker row returned for an empty result.
type QueryRow struct {
	Document *Document `json:"document,omitempty"`
	ReadTime string    `json:"readTime,omitempty"`
}

// RunQueryRequest is the runQuery request body.
type RunQueryRequest struct {
	StructuredQuery StructuredQuery `json:"structuredQuery"`
}

type StructuredQuery struct {
	From    []CollectionSelector `json:"from"`
	OrderBy []Order              `json:"orderBy,omitempty"`
}

type CollectionSelector struct {
	CollectionID string `json:"collectionId"`
}

type Order struct {
	Field     FieldReference `json:"field"`
	Direction string         `json:"direction,omitempty"`
}

type FieldReference struct {
	FieldPath string `json:"fieldPath"`
}

// OrderedByID builds the query reading a whole collection ascending by id.
func OrderedByID(collection string) RunQueryRequest {
	return RunQueryRequest{StructuredQuery: StructuredQuery{
		From:    []CollectionSelector{{CollectionID: collection}},
		OrderBy: []Order{{Field: FieldReference{FieldPath: "id"}, Direction: "ASCENDING"}},
	}}
}

// String returns the value as a string, converting scalars.
func (v Value) String() string {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.IntegerValue != nil:
		return *v.IntegerValue
	case v.DoubleValue != nil:
		return strconv.FormatFloat(*v.DoubleValue, 'f', -1, 64)
	case v.BooleanValue != nil:
		return strconv.FormatBool(*v.BooleanValue)
	default:
		return ""
	}
}

// Int returns the value as an integer.
func (v Value) Int() (int, error) {
	switch {
	case v.IntegerValue != nil:
		return strconv.Atoi(strings.TrimSpace(*v.IntegerValue))
	case v.DoubleValue != nil:
		return int(*v.DoubleValue), nil
	case v.StringValue != nil:
		return strconv.Atoi(strings.TrimSpace(*v.StringValue))
	default:
		return 0, fmt.Errorf("value is not numeric")
	}
}

// Bool returns the value as a boolean; anything but true is false.
func (v Value) Bool() bool {
	return v.BooleanValue != nil && *v.BooleanValue
}

func stringValue(s string) Value { return Value{StringValue: &s} }
func boolValue(b bool) Value     { return Value{BooleanValue: &b} }
func intValue(i int) Value {
	s := strconv.Itoa(i)
	return Value{IntegerValue: &s}
}

// DecodeCard converts document fields to a card. The id field is required.
func DecodeCard(doc Document) (card.Card, error) {
	idVal, ok := doc.Fields["id"]
	if !ok {
		return card.Card{}, fmt.Errorf("document %q has no id", doc.Name)
	}
	id, err := idVal.Int()
	if err != nil {
		return card.Card{}, fmt.Errorf("document %q id: %w", doc.Name, err)
	}
	f := doc.Fields
	return card.Card{
		ID:              id,
		Title:           f["title"].String(),
		Text:            f["text"].String(),
		Image:           f["image"].String(),
		FlipText:        f["flipText"].String(),
		IsFlip:          f["isFlip"].Bool(),
		IsScratch:       f["isScratch"].Bool(),
		IsSpecial:       f["isSpecial"].Bool(),
		ExplosionEmojis: f["explosionEmojis"].String(),
		BgColor:         f["bgColor"].String(),
	}, nil
}

// EncodeCard converts a card to document fields. Empty optional strings are
// omitted.
func EncodeCard(c card.Card) map[string]Value {
	fields := map[string]Value{
		"id":        intValue(c.ID),
		"title":     stringValue(c.Title),
		"text":      stringValue(c.Text),
		"image":     stringValue(c.Image),
		"isFlip":    boolValue(c.IsFlip),
		"isScratch": boolValue(c.IsScratch),
		"isSpecial": boolValue(c.IsSpecial),
	}
	if c.FlipText != "" {
		fields["flipText"] = stringValue(c.FlipText)
	}
	if c.ExplosionEmojis != "" {
		fields["explosionEmojis"] = stringValue(c.ExplosionEmojis)
	}
	if c.BgColor != "" {
		fields["bgColor"] = stringValue(c.BgColor)
	}
	return fields
}
