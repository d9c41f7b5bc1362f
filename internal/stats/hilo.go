package stats

import "sort"

// ClampHiLo normalizes a hi/lo split the way the stats endpoint accepts it:
// both clamped into [0,15], together summing to 15, with 12/3 as the reset
// default.
func ClampHiLo(hi, lo int) (int, int) {
	if hi < 0 {
		hi = 0
	}
	if hi > 15 {
		hi = 15
	}
	if lo < 0 {
		lo = 0
	}
	if lo > 15-hi {
		lo = 15 - hi
	}
	if hi+lo != 15 {
		return 12, 3
	}
	return hi, lo
}

// HiLo picks the hi most frequent and the lo least frequent numbers from a
// frequency table, ties broken by the lower number.
func HiLo(table []Frequency, hi, lo int) (hiNums, loNums []int) {
	desc := make([]Frequency, len(table))
	copy(desc, table)
	sort.Slice(desc, func(i, j int) bool {
		if desc[i].Count != desc[j].Count {
			return desc[i].Count > desc[j].Count
		}
		return desc[i].Number < desc[j].Number
	})

	asc := make([]Frequency, len(table))
	copy(asc, table)
	sort.Slice(asc, func(i, j int) bool {
		if asc[i].Count != asc[j].Count {
			return asc[i].Count < asc[j].Count
		}
		return asc[i].Number < asc[j].Number
	})

	if hi > len(desc) {
		hi = len(desc)
	}
	if lo > len(asc) {
		lo = len(asc)
	}
	for _, f := range desc[:hi] {
		hiNums = append(hiNums, f.Number)
	}
	for _, f := range asc[:lo] {
		loNums = append(loNums, f.Number)
	}
	return hiNums, loNums
}
