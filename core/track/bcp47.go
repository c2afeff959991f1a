package track

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIAlphanumeric(c byte) bool {
	return isASCIIAlpha(c) || (c >= '0' && c <= '9')
}

// IsValidBCP47LanguageTag reports whether tag is syntactically valid per a
// simplified subset of BCP 47 (https://tools.ietf.org/html/bcp47#section-2.1).
// It checks subtag shape only, not registry membership.
func IsValidBCP47LanguageTag(tag string) bool {
	length := len(tag)

	// Max length picked as double the longest example tag in RFC 5646, which
	// is 49 characters: https://tools.ietf.org/html/bcp47#section-4.4.2
	if length < 2 || length > 100 {
		return false
	}

	first := tag[0]
	if !isASCIIAlpha(first) {
		return false
	}

	second := tag[1]
	if length == 2 {
		return isASCIIAlpha(second)
	}

	grandfatheredIrregularOrPrivateUse := (first == 'i' || first == 'x') && second == '-'
	var nextIndexToCheck int

	if !grandfatheredIrregularOrPrivateUse {
		if !isASCIIAlpha(second) {
			return false
		}

		if length == 3 {
			return isASCIIAlpha(tag[2])
		}

		if isASCIIAlpha(tag[2]) {
			if tag[3] != '-' {
				return false
			}
			nextIndexToCheck = 4
		} else if tag[2] == '-' {
			nextIndexToCheck = 3
		} else {
			return false
		}
	} else {
		nextIndexToCheck = 2
	}

	for ; nextIndexToCheck < length; nextIndexToCheck++ {
		c := tag[nextIndexToCheck]
		if isASCIIAlphanumeric(c) || c == '-' {
			continue
		}
		return false
	}
	return true
}
