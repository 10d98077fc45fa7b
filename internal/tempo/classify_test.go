package tempo

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		bpm      int
		expected Label
	}{
		{40, Largo},
		{60, Largo},
		{61, Larghetto},
		{66, Larghetto},
		{67, Adagio},
		{76, Adagio},
		{77, Andante},
		{108, Andante},
		{109, Moderato},
		{120, Moderato},
		{121, Allegro},
		{168, Allegro},
		{169, Presto},
		{200, Presto},
		{201, Prestissimo},
		{208, Prestissimo},
		{999, Prestissimo},
		{0, Prestissimo},
	}

	for _, tc := range tests {
		if got := Classify(tc.bpm); got != tc.expected {
			t.Errorf("Classify(%d) = %q, expected %q", tc.bpm, got, tc.expected)
		}
	}
}

func TestMarkingsCoverRange(t *testing.T) {
	rows := Markings()
	if rows[0].Lo != MinBPM {
		t.Errorf("first marking starts at %d, expected %d", rows[0].Lo, MinBPM)
	}
	if last := rows[len(rows)-1]; last.Hi != MaxBPM || last.Label != Prestissimo {
		t.Errorf("last marking = %+v, expected Prestissimo up to %d", last, MaxBPM)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Lo != rows[i-1].Hi+1 {
			t.Errorf("gap between %+v and %+v", rows[i-1], rows[i])
		}
	}
	for _, m := range rows {
		for bpm := m.Lo; bpm <= m.Hi; bpm++ {
			if got := Classify(bpm); got != m.Label {
				t.Fatalf("Classify(%d) = %q, expected %q", bpm, got, m.Label)
			}
		}
	}
}
