package subtitle

import "testing"

func TestDefaultForceStyle(t *testing.T) {
	got := DefaultStyle().ForceStyle()
	want := "FontName=Arial,FontSize=48,PrimaryColour=&HFFFFFF,OutlineColour=&H000000," +
		"BorderStyle=1,Outline=3,Shadow=2,Alignment=2,MarginV=80"

	if got != want {
		t.Fatalf("ForceStyle = %q; want %q", got, want)
	}
}
