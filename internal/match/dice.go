package match

// bigrams builds the multiset of overlapping 2-letter substrings of a
// normalized string.
func bigrams(s string) map[string]int {
	m := make(map[string]int, len(s))
	for i := 0; i+2 <= len(s); i++ {
		m[s[i:i+2]]++
	}
	return m
}

// DiceSimilarity computes the Sørensen–Dice coefficient over letter
// bigrams of the two strings after normalization: 2·|A∩B| / (|A|+|B|),
// with the intersection respecting multiplicities. Strings with fewer
// than two letters score 0.
func DiceSimilarity(a, b string) float64 {
	return diceNormalized(Normalize(a), Normalize(b))
}

// diceNormalized is DiceSimilarity over already-normalized input, with
// the first side's bigrams precomputed by the caller when scoring many
// windows against one title.
func diceNormalized(a, b string) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	return diceAgainst(bigrams(a), len(a)-1, b)
}

func diceAgainst(aBigrams map[string]int, aCount int, b string) float64 {
	if aCount < 1 || len(b) < 2 {
		return 0
	}
	bBigrams := bigrams(b)
	bCount := len(b) - 1

	shared := 0
	for bg, n := range bBigrams {
		if an := aBigrams[bg]; an > 0 {
			if an < n {
				shared += an
			} else {
				shared += n
			}
		}
	}
	return 2 * float64(shared) / float64(aCount+bCount)
}
