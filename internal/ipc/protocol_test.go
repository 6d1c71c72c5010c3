package ipc

import "testing"

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"SET_SETTINGS","payload":{"opacity":0.3}}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Command != CommandSetSettings || len(req.Payload) == 0 {
		t.Fatalf("unexpected request: %+v", req)
	}

	for _, bad := range []string{"", "{", `{"payload":{}}`} {
		if _, err := ParseRequest([]byte(bad)); err == nil {
			t.Errorf("ParseRequest(%q) expected error", bad)
		}
	}
}

func TestSetSettingsPayloadAppearance(t *testing.T) {
	color := "white"
	a, err := SetSettingsPayload{Color: &color}.Appearance()
	if err != nil {
		t.Fatalf("Appearance: %v", err)
	}
	if a.Color == nil || *a.Color != 0xffffff || a.Opacity != nil || a.CornerRadius != nil {
		t.Fatalf("unexpected appearance: %+v", a)
	}

	bad := "#12"
	if _, err := (SetSettingsPayload{Color: &bad}).Appearance(); err == nil {
		t.Fatalf("expected color error")
	}
}
