package dtwalign

// withEnergyRow prepends a throwaway energy-coefficient row (all
// zeros) to a reduced MFCC matrix, since the core always drops row 0
// before use. Test fixtures are expressed directly in terms of the
// reduced matrix, so this helper turns those literals into a full
// MFCC.
func withEnergyRow(reduced [][]float64) *MFCC {
	if len(reduced) == 0 {
		return &MFCC{Matrix: reduced}
	}
	energy := make([]float64, len(reduced[0]))
	matrix := make([][]float64, 0, len(reduced)+1)
	matrix = append(matrix, energy)
	matrix = append(matrix, reduced...)
	return &MFCC{Matrix: matrix}
}
