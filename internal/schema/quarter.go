package schema

// Quarters is the fixed quarter axis shared by every series.
var Quarters = []string{
	"Q1 2023", "Q2 2023", "Q3 2023", "Q4 2023",
	"Q1 2024", "Q2 2024", "Q3 2024", "Q4 2024",
	"Q1 2025", "Q2 2025",
}

// QuarterCount is the length of the quarter axis.
const QuarterCount = 10

// QuarterIndex returns the position of q on the axis.
func QuarterIndex(q string) (int, bool) {
	for i, label := range Quarters {
		if label == q {
			return i, true
		}
	}
	return -1, false
}

// Axis returns a copy of the quarter axis.
func Axis() []string {
	out := make([]string, len(Quarters))
	copy(out, Quarters)
	return out
}
