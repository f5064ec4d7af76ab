package util

import (
	"math"

	"golang.org/x/exp/rand"
)

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func generateRandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min)
}

// jitteredMid picks the middle candidate QuickSelect hands to
// medianOfThreeIndex. A plain arithmetic midpoint degrades to worst-case
// partitioning on input that is already sorted (or reverse-sorted) by the
// comparator; randomizing which index stands in for "mid" avoids that
// without giving up median-of-three's resistance to adversarial pivots.
func jitteredMid(low, high int) int {
	if high-low < 2 {
		return low + (high-low)/2
	}
	return generateRandomInt(low+1, high)
}

// medianOfThreeIndex picks the index (among low, mid, high) whose key is the
// median of the three, so QuickSelect degrades less on already-sorted input.
func medianOfThreeIndex[T any](arr []T, low, mid, high int, compare func(a, b T) int) int {
	a, b, c := arr[low], arr[mid], arr[high]
	if compare(a, b) > 0 {
		a, b = b, a
		low, mid = mid, low
	}
	if compare(b, c) > 0 {
		b, c = c, b
		mid, high = high, mid
	}
	if compare(a, b) > 0 {
		mid = low
	}
	return mid
}

// QuickSelect partitions arr in place (Lomuto partitioning) so that the
// element at position k is the one that would occupy that position in
// sorted order; everything before it compares <=, everything after >=.
// Expected O(n) time, used by the KD-tree builder to find the median
// without fully sorting each recursive slice.
func QuickSelect[T any](arr []T, k, low, high int, compare func(a, b T) int) {
	for low < high {
		mid := jitteredMid(low, high)
		pivotIdx := medianOfThreeIndex(arr, low, mid, high, compare)
		arr[pivotIdx], arr[high] = arr[high], arr[pivotIdx]
		pivotValue := arr[high]

		i := low - 1
		for j := low; j < high; j++ {
			if compare(arr[j], pivotValue) < 0 {
				i++
				arr[i], arr[j] = arr[j], arr[i]
			}
		}
		i++
		arr[i], arr[high] = arr[high], arr[i]

		if k == i {
			return
		} else if k < i {
			high = i - 1
		} else {
			low = i + 1
		}
	}
}
