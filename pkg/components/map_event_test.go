package components

import "testing"

func TestMapEventActiveNote(t *testing.T) {
	ev := &MapEventComponent{EventID: 3, Pages: []string{"light 100 #FFFFFF", "", "beam 40 200 1 0 2"}}

	tests := []struct {
		name string
		page int
		want string
	}{
		{"第一页", 0, "light 100 #FFFFFF"},
		{"空注释页", 1, ""},
		{"最后一页", 2, "beam 40 200 1 0 2"},
		{"无生效页", -1, ""},
		{"越界", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev.ActivePage = tt.page
			if got := ev.ActiveNote(); got != tt.want {
				t.Errorf("ActiveNote() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirectionIsValid(t *testing.T) {
	for _, d := range []Direction{DirDown, DirLeft, DirRight, DirUp} {
		if !d.IsValid() {
			t.Errorf("Direction(%d) should be valid", d)
		}
	}
	for _, d := range []Direction{0, 1, 5, 9} {
		if d.IsValid() {
			t.Errorf("Direction(%d) should be invalid", d)
		}
	}
}
