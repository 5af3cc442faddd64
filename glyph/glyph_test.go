package glyph

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDependenciesAddAndEmpty(t *testing.T) {
	d := NewDependencies()
	if !d.IsEmpty() {
		t.Fatal("expected new Dependencies to be empty")
	}
	d.Add(FontID{Name: "Open Sans"}, 65)
	if d.IsEmpty() {
		t.Fatal("expected Dependencies to be non-empty after Add")
	}
}

func TestPositionsSatisfies(t *testing.T) {
	font := FontID{Name: "Open Sans"}
	req := NewDependencies()
	req.Add(font, 65)
	req.Add(font, 66)

	p := Positions{font: {65: Position{}}}
	if p.Satisfies(req) {
		t.Fatal("expected Satisfies false when a required glyph is missing")
	}

	p[font][66] = Position{}
	if !p.Satisfies(req) {
		t.Fatal("expected Satisfies true once every required glyph is present")
	}
}

func TestPositionsSatisfiesEmptyRequest(t *testing.T) {
	var p Positions
	if !p.Satisfies(NewDependencies()) {
		t.Fatal("an empty dependency set is always satisfied")
	}
}

func TestFontIDComparesByValue(t *testing.T) {
	a := FontID{Name: "Open Sans", Tag: language.MustParse("en")}
	b := FontID{Name: "Open Sans", Tag: language.MustParse("en")}
	if a != b {
		t.Fatal("FontID with identical fields must compare equal")
	}
}

func TestPositionsFallback(t *testing.T) {
	base := FontID{Name: "Noto Sans", Tag: language.MustParse("en")}
	fr := FontID{Name: "Noto Sans", Tag: language.MustParse("fr")}
	p := Positions{base: {}, fr: {}}

	want := FontID{Name: "Noto Sans", Tag: language.MustParse("en-US")}
	got, ok := p.Fallback(want)
	if !ok {
		t.Fatal("expected a fallback match for en-US against en/fr candidates")
	}
	if got.Name != "Noto Sans" {
		t.Fatalf("unexpected fallback font name %q", got.Name)
	}
}

func TestPositionsFallbackNoCandidates(t *testing.T) {
	p := Positions{}
	if _, ok := p.Fallback(FontID{Name: "Missing"}); ok {
		t.Fatal("expected no fallback from an empty Positions")
	}
}
