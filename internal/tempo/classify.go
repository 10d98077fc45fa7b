package tempo

// Label is a traditional tempo marking.
type Label string

const (
	Largo       Label = "Largo"
	Larghetto   Label = "Larghetto"
	Adagio      Label = "Adagio"
	Andante     Label = "Andante"
	Moderato    Label = "Moderato"
	Allegro     Label = "Allegro"
	Presto      Label = "Presto"
	Prestissimo Label = "Prestissimo"
)

// Marking is one row of the tempo table. Lo and Hi are inclusive.
type Marking struct {
	Lo    int
	Hi    int
	Label Label
}

// markings is ordered by Lo. Anything not covered falls through to Prestissimo.
var markings = []Marking{
	{Lo: 40, Hi: 60, Label: Largo},
	{Lo: 61, Hi: 66, Label: Larghetto},
	{Lo: 67, Hi: 76, Label: Adagio},
	{Lo: 77, Hi: 108, Label: Andante},
	{Lo: 109, Hi: 120, Label: Moderato},
	{Lo: 121, Hi: 168, Label: Allegro},
	{Lo: 169, Hi: 200, Label: Presto},
}

// Classify maps any integer BPM to its tempo marking.
func Classify(bpm int) Label {
	for _, m := range markings {
		if bpm >= m.Lo && bpm <= m.Hi {
			return m.Label
		}
	}
	return Prestissimo
}

// Markings returns a copy of the named ranges, plus the open-ended Prestissimo
// row with Hi set to MaxBPM.
func Markings() []Marking {
	out := make([]Marking, 0, len(markings)+1)
	out = append(out, markings...)
	out = append(out, Marking{Lo: 201, Hi: MaxBPM, Label: Prestissimo})
	return out
}

// String implements fmt.Stringer.
func (l Label) String() string {
	return string(l)
}
