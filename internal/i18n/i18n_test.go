package i18n

import "testing"

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", French},
		{"en-US,en;q=0.9", English},
		{"ar-MA", Arabic},
		{"de-DE", French},
		{"de-DE,en;q=0.5", English},
		{"fr-CA;q=0.8,en;q=0.9", English},
		{";;;garbage", French},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := Negotiate(tt.header); got != tt.want {
				t.Errorf("Negotiate(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestRegion(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"en-CA,en;q=0.9", "CA", true},
		{"fr", "", false},
		{"fr,ar-MA;q=0.5", "MA", true},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Region(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Region(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got, ok := Normalize(" EN "); !ok || got != English {
		t.Errorf("Normalize(EN) = %q, %v", got, ok)
	}
	if _, ok := Normalize("es"); ok {
		t.Error("es should not be supported")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(English, MsgNotFound); got != "Resource not found" {
		t.Errorf("unexpected message %q", got)
	}
	if got := Message("es", MsgNotFound); got != "Ressource introuvable" {
		t.Errorf("unknown language should fall back to french, got %q", got)
	}
	if got := Message(French, "nope"); got != "nope" {
		t.Errorf("unknown key should be returned as is, got %q", got)
	}
	for _, lang := range Supported {
		for key := range messages[French] {
			if _, ok := messages[lang][key]; !ok {
				t.Errorf("%s is missing %s", lang, key)
			}
		}
	}
}
