package terminal

import "testing"

func TestKeyByName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"ctrl_q", KeyCtrlQ},
		{"CTRL+Q", KeyCtrlQ},
		{"ctrl_a", KeyCtrlA},
		{"ctrl_z", KeyCtrlZ},
		{"left", KeyLeft},
		{"page_down", KeyPageDown},
		{"pgup", KeyPageUp},
		{" home ", KeyHome},
		{"shift_tab", KeyBacktab},
	}
	for _, tt := range tests {
		got, ok := KeyByName(tt.name)
		if !ok || got != tt.want {
			t.Errorf("KeyByName(%q) = %v, %v; want %v", tt.name, got, ok, tt.want)
		}
	}

	if _, ok := KeyByName("hyper_q"); ok {
		t.Error("unknown name must not resolve")
	}
}

func TestKeyNameRoundTrip(t *testing.T) {
	for k, name := range keyToName {
		got, ok := KeyByName(name)
		if !ok || got != k {
			t.Errorf("%q resolved to %v, want %v", name, got, k)
		}
	}
	if KeyName(KeyRune) != "" {
		t.Error("KeyRune has no name")
	}
}
