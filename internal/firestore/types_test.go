package firestore

import (
	"encoding/json"
	"testing"

	"github.com/five82/swipedeck/internal/card"
)

func TestDecodeCard_AllFields(t *testing.T) {
	raw := `{"name":"cards/x","fields":{
		"id":{"integerValue":"7"},
		"title":{"stringValue":"Bravo"},
		"text":{"stringValue":"<img src=\"a.png\" alt=\"🎉\">"},
		"image":{"stringValue":"https://example.com/a.png"},
		"flipText":{"stringValue":"back"},
		"isFlip":{"booleanValue":true},
		"isScratch":{"booleanValue":false},
		"isSpecial":{"booleanValue":true},
		"explosionEmojis":{"stringValue":"🎉"},
		"bgColor":{"stringValue":"#112233"}
	}}`
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := DecodeCard(doc)
	if err != nil {
		t.Fatalf("DecodeCard returned error: %v", err)
	}
	want := card.Card{
		ID:              7,
		Title:           "Bravo",
		Text:            `<img src="a.png" alt="🎉">`,
		Image:           "https://example.com/a.png",
		FlipText:        "back",
		IsFlip:          true,
		IsSpecial:       true,
		ExplosionEmojis: "🎉",
		BgColor:         "#112233",
	}
	if got != want {
		t.Fatalf("DecodeCard = %+v, want %+v", got, want)
	}
}

func TestDecodeCard_MissingOrBadID(t *testing.T) {
	if _, err := DecodeCard(Document{Name: "x", Fields: map[string]Value{}}); err == nil {
		t.Fatalf("DecodeCard without id returned nil error")
	}
	bad := "one"
	doc := Document{Fields: map[string]Value{"id": {IntegerValue: &bad}}}
	if _, err := DecodeCard(doc); err == nil {
		t.Fatalf("DecodeCard with non-numeric id returned nil error")
	}
}

func TestDecodeCard_NullAndDoubleValues(t *testing.T) {
	null := "NULL_VALUE"
	id := 3.0
	doc := Document{Fields: map[string]Value{
		"id":    {DoubleValue: &id},
		"title": {NullValue: &null},
	}}
	got, err := DecodeCard(doc)
	if err != nil {
		t.Fatalf("DecodeCard returned error: %v", err)
	}
	if got.ID != 3 || got.Title != "" {
		t.Fatalf("DecodeCard = %+v, want id 3 and empty title", got)
	}
}

func TestEncodeCard_RoundTripsThroughDecode(t *testing.T) {
	in := card.Card{ID: 12, Title: "t", Text: "x", IsScratch: true, BgColor: "#000"}
	fields := EncodeCard(in)
	if _, ok := fields["flipText"]; ok {
		t.Fatalf("empty flipText should be omitted")
	}
	if v := fields["id"]; v.IntegerValue == nil || *v.IntegerValue != "12" {
		t.Fatalf("id encoded as %+v, want integerValue \"12\"", v)
	}
	out, err := DecodeCard(Document{Fields: fields})
	if err != nil {
		t.Fatalf("DecodeCard returned error: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}
