package parse

import "strconv"

// axisFields is the result of scanning a coordinate data block such as
// "X1000000Y-500000I0J0" into its optional signed integer components.
// A nil field means the letter was absent, or its value could not be
// parsed as a signed integer, in which case it is treated as absent.
type axisFields struct {
	x, y, i, j *int64
}

// scanAxisFields walks s byte by byte: after a letter in {X,Y,I,J}, it
// reads an optional sign and a run of digits, then looks for the next
// letter. Characters that aren't one of the four axis letters are
// skipped defensively rather than aborting the whole scan, so a single
// bad field doesn't erase the others.
func scanAxisFields(s string) axisFields {
	var f axisFields
	n := len(s)
	i := 0
	for i < n {
		letter := s[i]
		if letter != 'X' && letter != 'Y' && letter != 'I' && letter != 'J' {
			i++
			continue
		}
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			if v, err := strconv.ParseInt(s[i+1:k], 10, 64); err == nil {
				switch letter {
				case 'X':
					f.x = &v
				case 'Y':
					f.y = &v
				case 'I':
					f.i = &v
				case 'J':
					f.j = &v
				}
			}
		}
		i = k
	}
	return f
}
